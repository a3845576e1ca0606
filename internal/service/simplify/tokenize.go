package simplify

import (
	"unicode"
	"unicode/utf8"
)

// span is a [start, end) byte-offset range into the original passage. All
// later rewriting happens by offset, so tokens must never be re-derived from
// a mutated string.
type span struct {
	start int
	end   int
}

// token is one word occurrence with its position in the original text.
type token struct {
	span
	text          string
	sentenceStart bool
}

// sentenceSpans segments text into sentence ranges. A sentence ends at
// '.', '!' or '?' followed by whitespace, except inside markup tags:
// punctuation in attribute text ("Mr. Smith") must not split, or the tail of
// the tag would start a new sentence outside tag-skipping state and attribute
// words would get tokenized. Offsets are absolute, so concatenating
// per-sentence token lists preserves positions in the original string.
func sentenceSpans(text string) []span {
	var spans []span
	start := 0
	inTag := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<':
			inTag = true
		case '>':
			inTag = false
		case '.', '!', '?':
			if inTag {
				continue
			}
			j := i + 1
			for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
				j++
			}
			if j >= len(text) || isSpaceByte(text[j]) {
				spans = append(spans, span{start: start, end: j})
				start = j
				i = j - 1
			}
		}
	}
	if start < len(text) {
		spans = append(spans, span{start: start, end: len(text)})
	}
	return spans
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// tokenize word-tokenizes each sentence, producing absolute-offset tokens.
// A word is a run of letters or digits with internal apostrophes or hyphens;
// markup and punctuation are skipped. The first word of each sentence is
// flagged so the tagger can discount sentence-initial capitalization.
func tokenize(text string) []token {
	var tokens []token
	for _, sent := range sentenceSpans(text) {
		tokens = append(tokens, tokenizeSentence(text, sent)...)
	}
	return tokens
}

func tokenizeSentence(text string, sent span) []token {
	var tokens []token
	first := true
	inTag := false

	i := sent.start
	for i < sent.end {
		r, size := utf8.DecodeRuneInString(text[i:sent.end])

		// Skip HTML/markup tags so attribute text is never "simplified".
		if inTag {
			if r == '>' {
				inTag = false
			}
			i += size
			continue
		}
		if r == '<' {
			inTag = true
			i += size
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			i += size
			continue
		}

		start := i
		end := i
		for end < sent.end {
			r, size := utf8.DecodeRuneInString(text[end:sent.end])
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				end += size
				continue
			}
			// Internal apostrophe or hyphen: only if a letter follows.
			if (r == '\'' || r == '-') && end+size < sent.end {
				next, _ := utf8.DecodeRuneInString(text[end+size : sent.end])
				if unicode.IsLetter(next) {
					end += size
					continue
				}
			}
			break
		}

		tokens = append(tokens, token{
			span:          span{start: start, end: end},
			text:          text[start:end],
			sentenceStart: first,
		})
		first = false
		i = end
	}
	return tokens
}
