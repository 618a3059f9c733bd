package models

import "strings"

const keyPrefix = "ratelimit:"

// SanitizeKeySegment escapes the key delimiter so that a caller-controlled
// segment cannot address a neighbouring bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// Key names the bucket for class and client IP. IPv6 colons are escaped.
func Key(class Class, ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	return keyPrefix + string(class) + ":" + SanitizeKeySegment(ip)
}
