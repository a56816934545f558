// Package session persists conversation history keyed by caller-supplied
// session IDs. Two backends exist: an in-process map for single-instance
// deployments and Redis for anything load-balanced.
package session

import (
	"context"

	"civic-qa/internal/models"
)

// Store loads and appends to conversation sessions. Get creates the session
// lazily: an unknown ID yields an empty session, never an error.
type Store interface {
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Append(ctx context.Context, sessionID string, ex models.Exchange) error
}
