package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(tokens []token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.text)
	}
	return out
}

func TestTokenizeSentenceStarts(t *testing.T) {
	tokens := tokenize("The fox ran. It hid! Really?")

	require.Equal(t,
		[]string{"The", "fox", "ran", "It", "hid", "Really"},
		tokenTexts(tokens))

	var starts []string
	for _, tok := range tokens {
		if tok.sentenceStart {
			starts = append(starts, tok.text)
		}
	}
	assert.Equal(t, []string{"The", "It", "Really"}, starts)
}

func TestTokenizeSkipsMarkup(t *testing.T) {
	text := `He <em>ran</em> home.`
	tokens := tokenize(text)
	assert.Equal(t, []string{"He", "ran", "home"}, tokenTexts(tokens))

	// Spans must point at the original text, not the stripped form.
	for _, tok := range tokens {
		assert.Equal(t, tok.text, text[tok.start:tok.end])
	}
}

func TestTokenizeSkipsPunctuatedAttributes(t *testing.T) {
	// Sentence punctuation inside an attribute must not end the sentence:
	// words after the split would fall outside tag-skipping and be treated
	// as prose, so replacements could be spliced into the attribute.
	text := `<img title="Mr. Smith the gargantuan"> hello`
	tokens := tokenize(text)

	require.Equal(t, []string{"hello"}, tokenTexts(tokens))
	assert.Equal(t, "hello", text[tokens[0].start:tokens[0].end])
}

func TestTokenizeTagAcrossSentenceBoundary(t *testing.T) {
	tokens := tokenize(`One sentence. <a href="x.html">two</a> words.`)
	assert.Equal(t, []string{"One", "sentence", "two", "words"}, tokenTexts(tokens))
}
