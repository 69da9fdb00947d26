package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifiers(t *testing.T) {
	for _, name := range []string{"n", "m_1", "_x", "Batch"} {
		assert.Truef(t, IsIdentifier(name), "IsIdentifier(%q)", name)
		assert.Equal(t, name, NormalizeIdentifier(name))
	}
	for _, name := range []string{"", "1n", "a-b", "n?", "é"} {
		assert.Falsef(t, IsIdentifier(name), "IsIdentifier(%q)", name)
	}
	assert.Equal(t, "_1n", NormalizeIdentifier("1n"))
	assert.Equal(t, "a_b", NormalizeIdentifier("a-b"))

	assert.True(t, IsDecimal("3"))
	assert.True(t, IsDecimal("017"))
	assert.False(t, IsDecimal(""))
	assert.False(t, IsDecimal("3n"))
}
