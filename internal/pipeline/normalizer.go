// Package pipeline implements the query-understanding chain: pronoun and
// implied-subject resolution, entity extraction, intent classification,
// search-term extraction, the prioritized officials search, and response
// rendering. Stages are plain structs wired together by the Engine; each is
// testable in isolation with a custom lexicon.
package pipeline

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"civic-qa/internal/lexicon"
)

const (
	// canonicalThreshold is the similarity a variant must reach before a
	// term is rewritten to the canonical label.
	canonicalThreshold = 0.8
	// closeEnoughThreshold is the looser predicate for comparing two
	// arbitrary strings without canonicalizing either.
	closeEnoughThreshold = 0.6
)

// Normalizer canonicalizes misspelled neighborhood and office terms. Table
// order is significant: the first variant clearing the threshold wins.
type Normalizer struct {
	tables [][]lexicon.VariantEntry
}

func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{tables: [][]lexicon.VariantEntry{lex.Neighborhoods, lex.Offices}}
}

// Normalize returns the canonical label for a recognized variant, or the
// input unchanged. Canonical labels normalize to themselves.
func (n *Normalizer) Normalize(term string) string {
	for _, table := range n.tables {
		for _, entry := range table {
			for _, variant := range entry.Variants {
				if Similarity(term, variant) >= canonicalThreshold {
					return entry.Canonical
				}
			}
		}
	}
	return term
}

// CloseEnough reports whether two strings are similar enough to be treated
// as the same term, without rewriting either.
func CloseEnough(a, b string) bool {
	return Similarity(a, b) >= closeEnoughThreshold
}

// Similarity is an edit-distance ratio in [0,1] over the lowercased inputs:
// 1 means identical, 0 means nothing in common.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
