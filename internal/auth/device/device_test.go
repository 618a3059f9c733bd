package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		contains []string
	}{
		{
			name:     "chrome on mac",
			ua:       "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			contains: []string{"Chrome", " on "},
		},
		{
			name:     "safari on iphone",
			ua:       "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			contains: []string{"iPhone", " on "},
		},
		{
			name:     "firefox on linux",
			ua:       "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			contains: []string{"Firefox", " on "},
		},
		{
			name:     "unrecognised agent still formatted",
			ua:       "Unknown/1.0",
			contains: []string{" on "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayName(tt.ua)
			for _, part := range tt.contains {
				assert.Contains(t, got, part)
			}
			assert.Equal(t, strings.TrimSpace(got), got)
			assert.NotContains(t, got, "  ")
		})
	}
}

func TestDisplayNameEmpty(t *testing.T) {
	assert.Equal(t, "Unknown Device", DisplayName(""))
	assert.Equal(t, "Unknown Device", DisplayName("   "))
}
