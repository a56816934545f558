package pipeline

import (
	"regexp"
	"strings"
	"unicode"

	"civic-qa/internal/lexicon"
)

// Ordered specific-first so the bare "did" pattern cannot shadow the
// longer forms.
var verbPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`where did ([a-z]+ [a-z]+)`),
	regexp.MustCompile(`what did ([a-z]+ [a-z]+)`),
	regexp.MustCompile(`what does ([a-z]+ [a-z]+)`),
	regexp.MustCompile(`did ([a-z]+ [a-z]+)`),
}

var (
	possessivePattern = regexp.MustCompile(`([a-z]+(?: [a-z]+)?)'s`)
	districtTermRE    = regexp.MustCompile(`district\s+(\d+)`)
)

// TermExtractor reduces an enhanced query to the literal probe term for the
// officials search. Exactly one rule fires; the rules run in a strict
// priority order.
type TermExtractor struct {
	lex *lexicon.Lexicon
}

func NewTermExtractor(lex *lexicon.Lexicon) *TermExtractor {
	return &TermExtractor{lex: lex}
}

// Extract applies the first matching rule:
//  1. office keyword containment -> canonical office word
//  2. Title Case name sequence in the original-case query -> verbatim
//  3. "where did X" / "what did X" / "what does X" / "did X" -> captured
//     span, capitalized per word
//  4. possessive "X's" -> captured span, capitalized per word
//  5. "district <digits>" -> normalized district term
//  6. fallback: strip stop phrases from the lowercased query
func (t *TermExtractor) Extract(query string) string {
	lower := strings.ToLower(query)

	for _, kw := range t.lex.OfficeKeywords {
		if strings.Contains(lower, kw.Term) {
			return kw.Canonical
		}
	}

	if name := personPattern.FindString(query); name != "" {
		return name
	}

	for _, pattern := range verbPhrasePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			return capitalizeWords(m[1])
		}
	}

	if m := possessivePattern.FindStringSubmatch(lower); m != nil {
		return capitalizeWords(m[1])
	}

	if m := districtTermRE.FindStringSubmatch(lower); m != nil {
		return "district " + m[1]
	}

	return t.stripStopPhrases(lower, query)
}

func (t *TermExtractor) stripStopPhrases(lower, original string) string {
	cleaned := strings.TrimRight(lower, "?!. ")
	for _, phrase := range t.lex.StopPhrases {
		cleaned = removePhrase(cleaned, phrase)
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return original
	}
	return cleaned
}

// removePhrase deletes whole-word occurrences of a phrase. Plain
// strings.ReplaceAll would eat "the" out of "weather".
func removePhrase(s, phrase string) string {
	for {
		i := indexPhrase(s, phrase)
		if i < 0 {
			return s
		}
		s = s[:i] + s[i+len(phrase):]
	}
}

func indexPhrase(s, phrase string) int {
	from := 0
	for {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !isWordByte(s[i-1])
		after := i+len(phrase) == len(s) || !isWordByte(s[i+len(phrase)])
		if before && after {
			return i
		}
		from = i + 1
	}
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
