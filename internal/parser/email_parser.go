package parser

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks if a string looks like an email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}
