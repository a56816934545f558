package models

import "time"

// MaxExchanges caps session history; older exchanges are dropped first.
const MaxExchanges = 20

// Entities is one extraction pass over a piece of text. Slices keep
// first-occurrence order and may contain duplicates.
type Entities struct {
	People    []string `json:"people"`
	Offices   []string `json:"offices"`
	Districts []string `json:"districts"`
	Parties   []string `json:"parties"`
	Concepts  []string `json:"concepts"`
}

// Exchange is one completed query-response turn.
type Exchange struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Entities  Entities  `json:"entities"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a caller-identified conversational thread. Created lazily on
// first reference and mutated only by appending exchanges.
type Session struct {
	ID              string     `json:"id"`
	Exchanges       []Exchange `json:"exchanges"`
	CurrentEntities Entities   `json:"currentEntities"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Append records a finished exchange and trims history to MaxExchanges.
func (s *Session) Append(ex Exchange) {
	s.Exchanges = append(s.Exchanges, ex)
	if len(s.Exchanges) > MaxExchanges {
		s.Exchanges = s.Exchanges[len(s.Exchanges)-MaxExchanges:]
	}
	s.CurrentEntities = ex.Entities
}

// Recent returns up to n of the newest exchanges, newest first.
func (s *Session) Recent(n int) []Exchange {
	if n <= 0 || len(s.Exchanges) == 0 {
		return nil
	}
	if n > len(s.Exchanges) {
		n = len(s.Exchanges)
	}
	out := make([]Exchange, 0, n)
	for i := len(s.Exchanges) - 1; i >= len(s.Exchanges)-n; i-- {
		out = append(out, s.Exchanges[i])
	}
	return out
}
