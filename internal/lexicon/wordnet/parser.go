// Package wordnet parses Open English WordNet GWN-LMF JSON files into lemma
// and synonym-set records. Pure function: file path in, structs out. No
// database dependencies.
package wordnet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Lemma is one written form with its WordNet part-of-speech letter
// (n, v, a, s, r).
type Lemma struct {
	WrittenForm  string
	PartOfSpeech string
}

// Synset groups the written forms that share one meaning.
type Synset struct {
	ID           string
	PartOfSpeech string
	Definition   string
	Members      []string
}

// ParseResult holds the parsed lemmas and synsets.
type ParseResult struct {
	Lemmas  []Lemma
	Synsets []Synset
	Stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalEntries  int
	TotalSynsets  int
	EmptySynsets  int
	MissingSynset int
}

// GWN-LMF JSON internal types for deserialization.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID     string     `json:"@id"`
	Lemma  gwnLemma   `json:"lemma"`
	Senses []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm  string `json:"writtenForm"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnSense struct {
	ID     string `json:"@id"`
	Synset string `json:"synset"`
}

type gwnSynset struct {
	ID           string   `json:"@id"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Definition   []string `json:"definition"`
}

// Parse reads a GWN-LMF JSON file and extracts lemmas and member-resolved
// synsets. Synsets that end up with no members are dropped.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var doc gwnDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return ParseResult{}, fmt.Errorf("decode JSON: %w", err)
	}

	var result ParseResult
	members := make(map[string][]string)

	for _, lexicon := range doc.Graph {
		for _, entry := range lexicon.Entries {
			form := strings.TrimSpace(entry.Lemma.WrittenForm)
			if form == "" {
				continue
			}
			result.Stats.TotalEntries++
			result.Lemmas = append(result.Lemmas, Lemma{
				WrittenForm:  strings.ToLower(form),
				PartOfSpeech: normalizePOS(entry.Lemma.PartOfSpeech),
			})
			for _, sense := range entry.Senses {
				if sense.Synset == "" {
					result.Stats.MissingSynset++
					continue
				}
				members[sense.Synset] = append(members[sense.Synset], strings.ToLower(form))
			}
		}

		for _, syn := range lexicon.Synsets {
			result.Stats.TotalSynsets++
			ms := members[syn.ID]
			if len(ms) == 0 {
				result.Stats.EmptySynsets++
				continue
			}
			result.Synsets = append(result.Synsets, Synset{
				ID:           syn.ID,
				PartOfSpeech: normalizePOS(syn.PartOfSpeech),
				Definition:   strings.Join(syn.Definition, "; "),
				Members:      ms,
			})
		}
	}

	return result, nil
}

// normalizePOS strips the "wn:" style prefixes some releases carry and
// lowercases the letter code.
func normalizePOS(pos string) string {
	pos = strings.ToLower(strings.TrimSpace(pos))
	if i := strings.LastIndexByte(pos, ':'); i >= 0 {
		pos = pos[i+1:]
	}
	return pos
}
