package freq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	in := strings.NewReader("word,zipf\nThe,7.73\npurchase,4.45\nbuy,5.25\n")

	table, err := Parse(in)
	require.NoError(t, err)
	assert.Len(t, table, 3)
	assert.Equal(t, 7.73, table["the"], "words are lowercased")
	assert.Equal(t, 4.45, table["purchase"])
}

func TestParseEmpty(t *testing.T) {
	table, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestParseHeaderOnly(t *testing.T) {
	table, err := Parse(strings.NewReader("word,zipf\n"))
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestParseDuplicateKeepsLast(t *testing.T) {
	table, err := Parse(strings.NewReader("word,zipf\nstart,5.0\nstart,5.3\n"))
	require.NoError(t, err)
	assert.Equal(t, 5.3, table["start"])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing zipf column", "word,zipf\nalone\n"},
		{"bad zipf value", "word,zipf\ncat,abc\n"},
		{"negative zipf", "word,zipf\ncat,-1.0\n"},
		{"empty word", "word,zipf\n ,3.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}
