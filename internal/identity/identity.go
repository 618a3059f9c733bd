// Package identity validates and formats the three identifiers a user can
// log in with: email, phone number, and national (citizenship) ID.
//
// Validators accept only canonical strings. Partially typed input, such as a
// national ID without its dashes, is rejected.
package identity

import (
	"regexp"
	"strings"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^(98|97)\d{8}$`)
	nationalIDPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}-\d{2}-\d{5}$`)
	phoneInputPattern = regexp.MustCompile(`^\d{0,10}$`)
)

const (
	// NationalIDMaxLen is the input limit of the national ID field, dashes included.
	NationalIDMaxLen = 18
)

// Method is an identification method.
type Method string

const (
	MethodEmail      Method = "email"
	MethodPhone      Method = "phone"
	MethodNationalID Method = "nationalId"
)

// Methods lists the methods in display order.
var Methods = []Method{MethodEmail, MethodPhone, MethodNationalID}

func (m Method) Valid() bool {
	switch m {
	case MethodEmail, MethodPhone, MethodNationalID:
		return true
	}
	return false
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone accepts exactly ten digits starting with 98 or 97.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidNationalID accepts XX-XX-XX-XX-XXXXX.
func IsValidNationalID(s string) bool {
	return nationalIDPattern.MatchString(s)
}

// Validate dispatches to the validator for m.
func Validate(m Method, s string) bool {
	switch m {
	case MethodEmail:
		return IsValidEmail(s)
	case MethodPhone:
		return IsValidPhone(s)
	case MethodNationalID:
		return IsValidNationalID(s)
	}
	return false
}

// FormatNationalID strips non-digits and groups them as 2-2-2-2 followed by
// the remaining digits, then cuts the result at NationalIDMaxLen. More than
// thirteen digits therefore leave a last group longer than five, which
// IsValidNationalID rejects.
func FormatNationalID(input string) string {
	var b strings.Builder
	digits := 0
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		if digits == 2 || digits == 4 || digits == 6 || digits == 8 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
		digits++
	}
	out := b.String()
	if len(out) > NationalIDMaxLen {
		out = out[:NationalIDMaxLen]
	}
	return out
}

// SanitizePhoneInput applies the phone field's input mask: next is accepted
// when it is empty or up to ten digits, otherwise prev is kept.
func SanitizePhoneInput(prev, next string) string {
	if phoneInputPattern.MatchString(next) {
		return next
	}
	return prev
}

// Normalize canonicalizes an identifier for lookup. Emails are lowercased,
// national IDs are reformatted, phones are trimmed.
func Normalize(m Method, s string) string {
	s = strings.TrimSpace(s)
	switch m {
	case MethodEmail:
		return strings.ToLower(s)
	case MethodNationalID:
		return FormatNationalID(s)
	}
	return s
}
