// Package question generates practice questions for vocabulary items. A
// question either uses the vocabulary word directly or, for formal words
// that Cantonese speakers avoid, the colloquial expression natives would
// use instead. Dictionary entries retrieved from storage provide context
// for the generator.
package question

import (
	"regexp"
	"strings"
)

// entryHeadword matches the "id,word:" prefix of a dictionary entry line.
var entryHeadword = regexp.MustCompile(`^\d+,([^:]+):`)

// entrySimilar matches "(sim:...)" markers listing related expressions.
var entrySimilar = regexp.MustCompile(`\(sim:([^)]+)\)`)

// formalMarkers flag a dictionary entry as formal or written register.
var formalMarkers = []string{
	"(label:書面語)",
	"(label:大陸)",
	"!!!formal",
}

// Entry is a dictionary entry selected for a vocabulary word.
type Entry struct {
	// Text is the full raw dictionary entry.
	Text string

	// ExactMatch reports whether the entry's headword equals the word that
	// was looked up, as opposed to being merely the closest hit.
	ExactMatch bool

	// Formal reports whether the entry carries a formal or written-register
	// marker.
	Formal bool

	// Alternatives lists similar colloquial expressions extracted from the
	// entry's (sim:...) markers.
	Alternatives []string
}

// BestEntry picks the most relevant dictionary entry for a word from a list
// of retrieved candidates. An entry whose headword exactly matches the word
// wins; otherwise the first candidate is used. A nil or empty candidate list
// yields a zero Entry.
func BestEntry(candidates []string, word string) Entry {
	if len(candidates) == 0 {
		return Entry{}
	}

	for _, candidate := range candidates {
		text := strings.TrimSpace(candidate)
		m := entryHeadword.FindStringSubmatch(text)
		if m != nil && m[1] == word {
			return newEntry(text, true)
		}
	}

	return newEntry(strings.TrimSpace(candidates[0]), false)
}

func newEntry(text string, exact bool) Entry {
	formal := false
	for _, marker := range formalMarkers {
		if strings.Contains(text, marker) {
			formal = true
			break
		}
	}

	var alternatives []string
	for _, m := range entrySimilar.FindAllStringSubmatch(text, -1) {
		alternatives = append(alternatives, m[1])
	}

	return Entry{
		Text:         text,
		ExactMatch:   exact,
		Formal:       formal,
		Alternatives: alternatives,
	}
}
