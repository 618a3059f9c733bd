package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sita@example.com", Normalize("  Sita@Example.COM "))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "s**********@example.com", Mask("sita.sharma@example.com"))
	assert.Equal(t, "a@example.com", Mask("a@example.com"))
	assert.Equal(t, "******", Mask("nobody"))
}
