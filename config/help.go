package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
  Accounts service

  Flags:
    -config-path  path to the YAML config file (default "config.yaml")
    -help         print this message and exit

  Every config value can also be set through environment variables,
  for example DATABASE_HOST or AUTH_JWT_SECRET.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}
