package session

import (
	"context"
	"net/http"
	"time"
)

// Issuer mints a session record and the cookie carrying its id. Issuing
// a session never touches the user record.
type Issuer struct {
	Store  Store
	TTL    time.Duration
	Secure bool
}

func (i Issuer) Issue(ctx context.Context, w http.ResponseWriter, userID string) (string, error) {
	sessionID, err := GenerateID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	expiresAt := now.Add(i.TTL)

	sess := Session{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := i.Store.Create(ctx, sess); err != nil {
		return "", err
	}

	SetCookie(w, sessionID, expiresAt, CookieOptions{
		Secure:   i.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID, nil
}
