package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"  Trimmed  ", "trimmed"},
		{"word.", "word"},
		{`"quoted"`, "quoted"},
		{"(parens)", "parens"},
		{"don't", "don't"},
		{"well-known", "well-known"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeWord(tt.in), "input %q", tt.in)
	}
}

func TestValidWord(t *testing.T) {
	assert.True(t, ValidWord("cat"))
	assert.True(t, ValidWord("don't"))
	assert.True(t, ValidWord("well-known"))
	assert.False(t, ValidWord(""))
	assert.False(t, ValidWord("two words"))
	assert.False(t, ValidWord("tab\tword"))
}
