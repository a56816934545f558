package pipeline

import (
	"strings"

	"civic-qa/internal/lexicon"
	"civic-qa/internal/models"
)

// Analyzer classifies what a query is asking for and how verbose the
// answer should be.
type Analyzer struct {
	lex *lexicon.Lexicon
}

func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{lex: lex}
}

// Classify returns the intent of a query. Detail phrases are checked before
// basic phrases; the default is basic. Target categories accumulate in the
// fixed scan order of the keyword groups, so a query matching several
// groups lists them in group order, not input order.
func (a *Analyzer) Classify(query string) models.Intent {
	lower := strings.ToLower(query)

	level := models.DetailBasic
	if containsAnyPhrase(lower, a.lex.Detail.DetailedPhrases) {
		level = models.DetailDetailed
	} else if containsAnyPhrase(lower, a.lex.Detail.BasicPhrases) {
		level = models.DetailBasic
	}

	var targets []models.TargetInfo
	for _, group := range a.lex.IntentGroups {
		if containsAnyPhrase(lower, group.Keywords) {
			targets = append(targets, models.TargetInfo(group.Target))
		}
	}

	return models.Intent{DetailLevel: level, TargetInfo: targets}
}
