// Package migrations holds the embedded SQL migrations applied on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
