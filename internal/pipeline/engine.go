package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	apperrors "civic-qa/internal/common/errors"
	"civic-qa/internal/common/logger"
	"civic-qa/internal/common/metrics"
	"civic-qa/internal/lexicon"
	"civic-qa/internal/session"
)

// Engine runs a query end to end: context enhancement, term extraction,
// intent classification, search, rendering, and history recording. One
// Engine serves all sessions; per-session state lives in the session store.
type Engine struct {
	conversation *Conversation
	terms        *TermExtractor
	analyzer     *Analyzer
	search       *Search
	responder    *Responder
	sessions     session.Store
	logger       logger.Logger
}

func NewEngine(repo OfficialsRepo, sessions session.Store, lex *lexicon.Lexicon, log logger.Logger) *Engine {
	extractor := NewExtractor(lex)
	return &Engine{
		conversation: NewConversation(sessions, extractor, lex, log),
		terms:        NewTermExtractor(lex),
		analyzer:     NewAnalyzer(lex),
		search:       NewSearch(repo, NewNormalizer(lex), lex, log),
		responder:    NewResponder(),
		sessions:     sessions,
		logger:       log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// Answer processes one query within a session. "No results" is a normal
// response; only store access failures return an error.
func (e *Engine) Answer(ctx context.Context, query, sessionID string) (string, error) {
	start := time.Now()

	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", e.fail(sessionID, err)
	}

	enhanced := e.conversation.EnhancePronouns(query, sess)
	enhanced = e.conversation.EnhanceImpliedSubject(enhanced, sess)

	term := e.terms.Extract(enhanced)
	intent := e.analyzer.Classify(enhanced)

	e.logger.Debug("query analyzed", map[string]interface{}{
		"sessionId": sessionID,
		"term":      term,
		"intent":    intent.Primary(),
		"detail":    string(intent.DetailLevel),
	})

	result, err := e.search.Search(ctx, term, intent)
	if err != nil {
		return "", e.fail(sessionID, err)
	}

	response := e.responder.Render(result, intent, query)

	if err := e.conversation.AddExchange(ctx, sessionID, query, response); err != nil {
		return "", e.fail(sessionID, err)
	}

	if len(result.Officials) == 0 && result.Marker == "" {
		metrics.NoMatchResponses.Inc()
	}
	metrics.QuestionsProcessed.WithLabelValues(intent.Primary()).Inc()
	metrics.QuestionDuration.WithLabelValues(intent.Primary()).Observe(time.Since(start).Seconds())

	return response, nil
}

func (e *Engine) fail(sessionID string, err error) error {
	code := "UNKNOWN"
	var stdErr *apperrors.StandardError
	if stderrors.As(err, &stdErr) {
		code = string(stdErr.Code)
	}
	metrics.QuestionsFailed.WithLabelValues(code).Inc()
	e.logger.WithError(err).Error("question processing failed",
		map[string]interface{}{"sessionId": sessionID})
	return err
}
