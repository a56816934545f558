package pipeline

import (
	"context"
	stderrors "errors"
	"strings"

	"civic-qa/internal/common/errors"
	"civic-qa/internal/common/logger"
	"civic-qa/internal/common/metrics"
	"civic-qa/internal/lexicon"
	"civic-qa/internal/models"
)

// OfficialsRepo is the narrow store contract the search runs on. Each
// method is one fixed predicate shape.
type OfficialsRepo interface {
	ByPartyContains(ctx context.Context, party string) ([]models.Official, error)
	ByDistrict(ctx context.Context, number string) ([]models.Official, error)
	ByNameAndOffices(ctx context.Context, name string, offices []string, level string) ([]models.Official, error)
	ByOfficeContains(ctx context.Context, term string, requireSalary bool) ([]models.Official, error)
	ByNameContains(ctx context.Context, term string, requireSalary bool) ([]models.Official, error)
	ByAnyField(ctx context.Context, term string, requireSalary bool) ([]models.Official, error)
}

// MarkerNoPartyOfficials signals that a party lookup matched a real party
// but the table holds nobody of it. The renderer turns this into an
// explanation instead of a bare "not found".
const MarkerNoPartyOfficials = "no_party_officials"

// Result is the search outcome: either officials or a special marker,
// never both.
type Result struct {
	Officials []models.Official
	Marker    string
}

// Search runs the prioritized branch sequence over the officials store.
type Search struct {
	repo       OfficialsRepo
	normalizer *Normalizer
	lex        *lexicon.Lexicon
	logger     logger.Logger
}

func NewSearch(repo OfficialsRepo, normalizer *Normalizer, lex *lexicon.Lexicon, log logger.Logger) *Search {
	return &Search{
		repo:       repo,
		normalizer: normalizer,
		lex:        lex,
		logger:     log.WithFields(map[string]interface{}{"component": "search"}),
	}
}

// Search tries each branch in order and returns the first branch's outcome.
// The party and district branches never fall through, even on zero rows;
// the priority-rule and substring branches do.
func (s *Search) Search(ctx context.Context, term string, intent models.Intent) (Result, error) {
	lower := strings.ToLower(strings.TrimSpace(term))
	requireSalary := intent.Wants(models.TargetSalary)

	// 1. Party keyword.
	for _, pg := range s.lex.Parties {
		if !containsAnyPhrase(lower, pg.Keywords) {
			continue
		}
		rows, err := s.repo.ByPartyContains(ctx, pg.Label)
		if err != nil {
			return Result{}, storeFailure("party", err)
		}
		metrics.SearchBranchHits.WithLabelValues("party").Inc()
		if len(rows) == 0 && pg.Label == "Republican" {
			return Result{Marker: MarkerNoPartyOfficials}, nil
		}
		return Result{Officials: rows}, nil
	}

	// 2. District number. Zero rows is a final "not found" for the
	// district, not a cue to try substring matching on "district 5".
	if m := districtTermRE.FindStringSubmatch(lower); m != nil {
		rows, err := s.repo.ByDistrict(ctx, m[1])
		if err != nil {
			return Result{}, storeFailure("district", err)
		}
		metrics.SearchBranchHits.WithLabelValues("district").Inc()
		return Result{Officials: rows}, nil
	}

	normalized := strings.ToLower(s.normalizer.Normalize(lower))

	// 3. Intent-prioritized single holders.
	for _, rule := range s.lex.PriorityRules {
		if !intent.Wants(models.TargetInfo(rule.Target)) || normalized != rule.Term {
			continue
		}
		rows, err := s.repo.ByNameAndOffices(ctx, rule.Name, rule.Offices, rule.Level)
		if err != nil {
			return Result{}, storeFailure("priority", err)
		}
		if len(rows) > 0 {
			metrics.SearchBranchHits.WithLabelValues("priority").Inc()
			return Result{Officials: rows}, nil
		}
	}

	// 4-6. Substring branches: office, then name, then any field.
	rows, err := s.repo.ByOfficeContains(ctx, normalized, requireSalary)
	if err != nil {
		return Result{}, storeFailure("office", err)
	}
	if len(rows) > 0 {
		metrics.SearchBranchHits.WithLabelValues("office").Inc()
		return Result{Officials: rows}, nil
	}

	rows, err = s.repo.ByNameContains(ctx, normalized, requireSalary)
	if err != nil {
		return Result{}, storeFailure("name", err)
	}
	if len(rows) > 0 {
		metrics.SearchBranchHits.WithLabelValues("name").Inc()
		return Result{Officials: rows}, nil
	}

	rows, err = s.repo.ByAnyField(ctx, normalized, requireSalary)
	if err != nil {
		return Result{}, storeFailure("any_field", err)
	}
	metrics.SearchBranchHits.WithLabelValues("any_field").Inc()
	return Result{Officials: rows}, nil
}

// storeFailure classifies a store error by branch. Context deadline hits
// get the retryable timeout code; everything else is a query failure.
func storeFailure(branch string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(branch)
	}
	return errors.NewQueryExecutionFailedError(branch, err)
}
