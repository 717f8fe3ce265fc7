// Package knowledge implements the keyword retrieval behind the local RAG service.
package knowledge

import (
	_ "embed"
	"regexp"
	"sort"
	"strings"
)

// NoMatchAnswer is returned when no sentence shares a word with the query.
const NoMatchAnswer = "I couldn't find specific information about that in the document."

const minSentenceLength = 10

//go:embed corpus.txt
var defaultCorpus string

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Index holds the searchable sentences of a corpus.
type Index struct {
	sentences []string
}

// DefaultIndex indexes the bundled study corpus.
func DefaultIndex() *Index {
	return NewIndex(defaultCorpus)
}

// NewIndex splits corpus into sentences, skipping fragments shorter than 10 characters.
func NewIndex(corpus string) *Index {
	parts := sentenceSplit.Split(corpus, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		sentence := strings.Join(strings.Fields(part), " ")
		if len(sentence) < minSentenceLength {
			continue
		}
		sentences = append(sentences, sentence)
	}
	return &Index{sentences: sentences}
}

// Len reports the number of indexed sentences.
func (idx *Index) Len() int {
	return len(idx.sentences)
}

type scored struct {
	sentence string
	hits     int
}

// Search returns up to limit sentences ranked by how many query words they contain.
// Ties keep corpus order.
func (idx *Index) Search(query string, limit int) []string {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 || limit <= 0 {
		return nil
	}

	var matches []scored
	for _, sentence := range idx.sentences {
		lower := strings.ToLower(sentence)
		hits := 0
		for _, word := range words {
			if strings.Contains(lower, word) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, scored{sentence: sentence, hits: hits})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].hits > matches[j].hits
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.sentence
	}
	return out
}

// Answer renders the top matches as "- " bullets, or NoMatchAnswer.
func (idx *Index) Answer(query string, limit int) (string, bool) {
	matches := idx.Search(query, limit)
	if len(matches) == 0 {
		return NoMatchAnswer, false
	}

	lines := make([]string, len(matches))
	for i, sentence := range matches {
		lines[i] = "- " + sentence
	}
	return strings.Join(lines, "\n"), true
}
