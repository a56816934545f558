package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"civic-qa/internal/lexicon"
	"civic-qa/internal/models"
)

var (
	// Two or more consecutive Title Case words. Coarse on purpose: it
	// over-matches sentence starts and under-matches lowercase names.
	personPattern   = regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`)
	districtPattern = regexp.MustCompile(`(?i)district\s+(\d+)`)
)

// Extractor pulls people, offices, districts, parties, and concepts out of
// free text with regexes and keyword containment.
type Extractor struct {
	lex *lexicon.Lexicon
}

func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Extract returns every entity category found in the text. Each category
// keeps first-occurrence order and may contain duplicates.
func (e *Extractor) Extract(text string) models.Entities {
	lower := strings.ToLower(text)

	var ents models.Entities
	ents.People = personPattern.FindAllString(text, -1)

	for _, m := range districtPattern.FindAllStringSubmatch(lower, -1) {
		ents.Districts = append(ents.Districts, "district "+m[1])
	}

	var offices []hit
	for _, kw := range e.lex.OfficeKeywords {
		if i := strings.Index(lower, kw.Term); i >= 0 {
			offices = append(offices, hit{i, kw.Canonical})
		}
	}
	ents.Offices = byOccurrence(offices)

	var parties []hit
	for _, pg := range e.lex.Parties {
		if i := firstKeywordIndex(lower, pg.Keywords); i >= 0 {
			parties = append(parties, hit{i, pg.Label})
		}
	}
	ents.Parties = byOccurrence(parties)

	var concepts []hit
	for _, c := range e.lex.Concepts {
		if i := strings.Index(lower, c); i >= 0 {
			concepts = append(concepts, hit{i, c})
		}
	}
	ents.Concepts = byOccurrence(concepts)

	return ents
}

type hit struct {
	index int
	value string
}

func byOccurrence(hits []hit) []string {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].index < hits[j].index })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.value)
	}
	return out
}

func firstKeywordIndex(lower string, keywords []string) int {
	first := -1
	for _, kw := range keywords {
		if i := strings.Index(lower, kw); i >= 0 && (first == -1 || i < first) {
			first = i
		}
	}
	return first
}
