// Package device turns a raw User-Agent header into a short label shown
// beside a session, such as "Chrome on Windows".
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "Unknown Device"

// DisplayName returns "<browser> on <platform>" for the given User-Agent.
// Parts the parser cannot name fall back to "Unknown".
func DisplayName(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return unknown
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown"
	}

	platform := ua.OS()
	if ua.Mobile() || platform == "" {
		platform = ua.Platform()
	}
	if platform == "" {
		platform = "Unknown"
	}

	return strings.TrimSpace(browser + " on " + platform)
}
