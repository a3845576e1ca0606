package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"cat", "cats"},
		{"box", "boxes"},
		{"church", "churches"},
		{"dish", "dishes"},
		{"city", "cities"},
		{"day", "days"},
		{"glass", "glasses"},
		{"go", "goes"},
		{"do", "does"},
		{"echo", "echoes"},
		{"hero", "heroes"},
		{"radio", "radios"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pluralize(tt.in), "pluralize(%q)", tt.in)
	}
}

func TestPastTense(t *testing.T) {
	tests := []struct{ in, want string }{
		{"walk", "walked"},
		{"smile", "smiled"},
		{"try", "tried"},
		{"stop", "stopped"},
		{"play", "played"},
		{"fix", "fixed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pastTense(tt.in), "pastTense(%q)", tt.in)
	}
}

func TestPresentParticiple(t *testing.T) {
	tests := []struct{ in, want string }{
		{"walk", "walking"},
		{"smile", "smiling"},
		{"stop", "stopping"},
		{"see", "seeing"},
		{"dye", "dyeing"},
		{"try", "trying"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, presentParticiple(tt.in), "presentParticiple(%q)", tt.in)
	}
}

func TestComparativeSuperlative(t *testing.T) {
	assert.Equal(t, "bigger", comparative("big"))
	assert.Equal(t, "biggest", superlative("big"))
	assert.Equal(t, "happier", comparative("happy"))
	assert.Equal(t, "happiest", superlative("happy"))
	assert.Equal(t, "larger", comparative("large"))
	assert.Equal(t, "largest", superlative("large"))
	assert.Equal(t, "taller", comparative("tall"))
}

func TestDeinflect(t *testing.T) {
	assert.Contains(t, deinflect("nouns", posNoun), "noun")
	assert.Contains(t, deinflect("stopped", posVerb), "stop")
	assert.Contains(t, deinflect("happier", posAdjective), "happy")
	assert.Empty(t, deinflect("go", posVerb), "no suffix matches")
}
