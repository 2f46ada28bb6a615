package auth

import (
	"fmt"
	"strings"
	"unicode"
)

// commonPasswords is a short deny-list of passwords seen at the top of every
// breached-credentials dump. Matching is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"welcome1":    {},
	"abc12345":    {},
	"monkey123":   {},
	"dragon123":   {},
	"letmein1":    {},
	"trustno1":    {},
	"superman":    {},
	"starwars":    {},
	"whatever":    {},
	"computer":    {},
	"internet":    {},
	"11111111":    {},
	"00000000":    {},
}

// PasswordPolicy enforces the password strength rules applied on
// registration and password change.
type PasswordPolicy struct {
	MinLength int
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 8}
}

// Validate returns the list of policy violations for password. userInputs
// are identity attributes (username, email local part) the password must not
// resemble. An empty slice means the password passes.
func (p PasswordPolicy) Validate(password string, userInputs ...string) []string {
	var violations []string

	if len(password) < p.MinLength {
		violations = append(violations, fmt.Sprintf("must be at least %d characters long", p.MinLength))
	}

	if password != "" && isEntirelyNumeric(password) {
		violations = append(violations, "must not be entirely numeric")
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		violations = append(violations, "is too common")
	}

	for _, input := range userInputs {
		input = strings.ToLower(strings.TrimSpace(input))
		if len(input) < 4 {
			continue
		}
		if strings.Contains(lower, input) || strings.Contains(input, lower) {
			violations = append(violations, "is too similar to the email or username")
			break
		}
	}

	return violations
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
