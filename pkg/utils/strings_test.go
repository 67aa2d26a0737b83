package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", 0))
	// rune-safe: must not split a multi-byte character
	assert.Equal(t, "héll", Truncate("héllo", 4))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "streaming budgets keep growing", NormalizeTitle("Streaming Budgets Keep Growing!"))
	assert.Equal(t, "q3 report ad spend", NormalizeTitle("  Q3 Report: Ad-Spend  "))
	assert.Equal(t, "", NormalizeTitle("!!! ??? ..."))
	assert.Equal(t, NormalizeTitle("CTV's Big Year"), NormalizeTitle("ctv s big year"))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("a\t b\n\n c "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestCleanToValidUTF8(t *testing.T) {
	assert.Equal(t, "ok", CleanToValidUTF8("ok"))
	assert.Equal(t, "ab", CleanToValidUTF8("a\x00b"))
	assert.Equal(t, "ab", CleanToValidUTF8("a\xffb"))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "b"))
	assert.False(t, ContainsString(nil, "a"))
}
