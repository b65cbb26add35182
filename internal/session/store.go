package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. It stores only an
// identity pointer; a session whose user row is gone is treated as
// absent by the auth middleware.
type Session struct {
	SessionID  string            // unique session identifier
	UserID     string            // references users.id
	CreatedAt  time.Time
	ExpiresAt  time.Time         // absolute expiry time
	Attributes map[string]string `json:",omitempty"`
}

// Store defines how sessions are stored and retrieved. Implementations
// must remain stateless across handler instances.
type Store interface {
	Create(ctx context.Context, s Session) error
	// Get returns (nil, nil) when the session does not exist.
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
