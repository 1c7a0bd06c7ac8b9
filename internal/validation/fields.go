// Package validation holds the client-side input rules shared by the login,
// registration and password-reset forms.
package validation

import (
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password the registration form accepts.
const MinPasswordLength = 6

var (
	// emailShape is a structural check, not an RFC 5322 parser:
	// non-space run, "@", non-space run, ".", non-space run.
	emailShape = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)
	nationalID = regexp.MustCompile(`^[0-9]{9}$`)
)

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailShape.MatchString(s)
}

// ValidatePassword reports whether s is long enough, counted in characters.
func ValidatePassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// ValidateNationalID reports whether s is exactly nine decimal digits.
func ValidateNationalID(s string) bool {
	return nationalID.MatchString(s)
}
