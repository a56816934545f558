package session

import (
	"context"
	"sync"
	"time"

	"civic-qa/internal/common/metrics"
	"civic-qa/internal/models"
)

// MemoryStore keeps sessions in process memory. History survives only as
// long as the process does.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return copySession(sess), nil
	}
	return &models.Session{ID: sessionID, CreatedAt: time.Now().UTC()}, nil
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, ex models.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &models.Session{ID: sessionID, CreatedAt: time.Now().UTC()}
		s.sessions[sessionID] = sess
		metrics.ActiveSessions.Inc()
	}
	sess.Append(ex)
	return nil
}

// copySession returns a snapshot so callers cannot mutate shared state.
func copySession(sess *models.Session) *models.Session {
	out := *sess
	out.Exchanges = make([]models.Exchange, len(sess.Exchanges))
	copy(out.Exchanges, sess.Exchanges)
	return &out
}
