package pipeline

import (
	"context"
	"regexp"
	"strings"
	"time"

	"civic-qa/internal/common/logger"
	"civic-qa/internal/lexicon"
	"civic-qa/internal/models"
	"civic-qa/internal/session"
)

var (
	femininePattern    = regexp.MustCompile(`(?i)\b(she|her|hers)\b`)
	masculinePattern   = regexp.MustCompile(`(?i)\b(he|him|his)\b`)
	interrogativeWords = []string{"who", "what", "where", "when", "why", "how"}
)

// Conversation resolves pronouns and implied subjects against session
// history and records completed exchanges. Coreference here is a closed
// vocabulary: only names on the configured allow-lists are candidates.
type Conversation struct {
	sessions  session.Store
	extractor *Extractor
	pronouns  lexicon.Pronouns
	subjects  []string
	logger    logger.Logger
}

func NewConversation(sessions session.Store, extractor *Extractor, lex *lexicon.Lexicon, log logger.Logger) *Conversation {
	subjects := make([]string, 0)
	for _, group := range lex.IntentGroups {
		if group.Target == string(models.TargetSalary) || group.Target == string(models.TargetTimeInOffice) {
			subjects = append(subjects, group.Keywords...)
		}
	}
	return &Conversation{
		sessions:  sessions,
		extractor: extractor,
		pronouns:  lex.Pronouns,
		subjects:  subjects,
		logger:    log.WithFields(map[string]interface{}{"component": "conversation"}),
	}
}

// EnhancePronouns substitutes feminine and masculine pronouns with the most
// recently mentioned allow-listed name from the last three exchanges. The
// feminine path falls back to a configured default when history has no
// candidate; the masculine path leaves the pronoun unresolved.
func (c *Conversation) EnhancePronouns(query string, sess *models.Session) string {
	if femininePattern.MatchString(query) {
		name := recentPerson(sess, 3, c.pronouns.FemaleOfficials)
		if name == "" {
			name = c.pronouns.DefaultFemale
		}
		query = femininePattern.ReplaceAllString(query, name)
	}
	if masculinePattern.MatchString(query) {
		if name := recentPerson(sess, 3, c.pronouns.MaleOfficials); name != "" {
			query = masculinePattern.ReplaceAllString(query, name)
		}
	}
	return query
}

// EnhanceImpliedSubject prepends the most recently mentioned person from
// the last two exchanges when the query asks about money or tenure without
// naming anyone and without an interrogative word. "governor salary" style
// follow-ups default to the configured governor when history offers
// nothing.
func (c *Conversation) EnhanceImpliedSubject(query string, sess *models.Session) string {
	lower := strings.ToLower(query)

	if !containsAnyPhrase(lower, c.subjects) {
		return query
	}
	if personPattern.MatchString(query) {
		return query
	}
	for _, w := range interrogativeWords {
		if containsWord(lower, w) {
			return query
		}
	}

	name := recentPerson(sess, 2, nil)
	if name == "" && strings.Contains(lower, "governor") {
		name = c.pronouns.DefaultGovernor
	}
	if name == "" {
		return query
	}
	return name + " " + query
}

// AddExchange records a completed turn, extracting entities from the query
// and response together so that names the answer introduced are available
// to later pronoun resolution.
func (c *Conversation) AddExchange(ctx context.Context, sessionID, query, response string) error {
	ex := models.Exchange{
		Query:     query,
		Response:  response,
		Entities:  c.extractor.Extract(query + " " + response),
		Timestamp: time.Now().UTC(),
	}
	return c.sessions.Append(ctx, sessionID, ex)
}

// recentPerson scans up to n exchanges, newest first, and returns the most
// recently mentioned person. A non-nil allowList restricts candidates to
// names on it and returns the list's spelling.
func recentPerson(sess *models.Session, n int, allowList []string) string {
	for _, ex := range sess.Recent(n) {
		people := ex.Entities.People
		for i := len(people) - 1; i >= 0; i-- {
			if allowList == nil {
				return people[i]
			}
			if match := listMatch(people[i], allowList); match != "" {
				return match
			}
		}
	}
	return ""
}

// listMatch returns the allow-list entry a name corresponds to, or "".
// Names come from entity extraction over rendered text, so the comparison
// tolerates spelling drift rather than requiring an exact match.
func listMatch(name string, list []string) string {
	for _, candidate := range list {
		if CloseEnough(name, candidate) {
			return candidate
		}
	}
	return ""
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func containsWord(lower, word string) bool {
	for i := strings.Index(lower, word); i >= 0; {
		before := i == 0 || !isWordByte(lower[i-1])
		after := i+len(word) == len(lower) || !isWordByte(lower[i+len(word)])
		if before && after {
			return true
		}
		next := strings.Index(lower[i+1:], word)
		if next < 0 {
			return false
		}
		i += 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('0' <= b && b <= '9')
}
