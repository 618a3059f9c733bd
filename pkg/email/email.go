// Package email holds helpers for handling email addresses as identifiers.
package email

import (
	"strings"
)

// Normalize lowercases and trims an address so lookups and uniqueness
// checks treat "Sita@Example.com " and "sita@example.com" as one account.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Mask hides most of the local part for logs and audit subjects:
// "sita.sharma@example.com" becomes "s**********@example.com".
func Mask(address string) string {
	local, domain, ok := strings.Cut(address, "@")
	if !ok || local == "" {
		return strings.Repeat("*", len([]rune(address)))
	}
	runes := []rune(local)
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}
