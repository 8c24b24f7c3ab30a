package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferenceCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^APT-\d{8}-\d{6}-\d{4}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code := GenerateReferenceCode()
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "codes vary across calls")
}

func TestGenerateSessionTokenIsUnique(t *testing.T) {
	assert.NotEqual(t, GenerateSessionToken(), GenerateSessionToken())
}
