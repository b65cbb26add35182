// Package handshake carries the anti-forgery state and PKCE verifier
// between login start and callback. Both values live in short-lived
// cookies scoped to the callback path and are expired on first use, so a
// replayed callback never finds a matching pair.
package handshake

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"time"
)

const (
	StateCookie    = "__oauth_state"
	VerifierCookie = "__oauth_pkce"

	// CookiePath covers both /auth/google/login and /auth/google/callback.
	CookiePath = "/auth/google"
)

// ErrInvalid is terminal: the callback is forged, replayed, or the
// handshake expired. The user must restart the login flow.
var ErrInvalid = errors.New("handshake state invalid")

type Handshake struct {
	TTL    time.Duration
	Secure bool
}

// Begin generates the state and PKCE pair, stores both in cookies on w,
// and returns the values to embed in the authorization URL.
func (h Handshake) Begin(w http.ResponseWriter) (state string, codeChallenge string) {
	state = randomToken()
	verifier := randomToken()

	hash := sha256.Sum256([]byte(verifier))
	codeChallenge = base64.RawURLEncoding.EncodeToString(hash[:])

	h.setCookie(w, StateCookie, state)
	h.setCookie(w, VerifierCookie, verifier)

	return state, codeChallenge
}

// Read returns the stored state and verifier from the callback request.
// Missing cookies come back as empty strings; Verify rejects those.
func (h Handshake) Read(r *http.Request) (state string, verifier string) {
	return cookieValue(r, StateCookie), cookieValue(r, VerifierCookie)
}

// Verify checks the state echoed by the provider against the stored pair.
// Any absent value or mismatch is a permanent reject.
func (h Handshake) Verify(receivedState, storedState, storedVerifier string) error {
	if receivedState == "" || storedState == "" || storedVerifier == "" {
		return ErrInvalid
	}
	if receivedState != storedState {
		return ErrInvalid
	}
	return nil
}

// Expire invalidates both handshake cookies. Called on every callback
// response, success or failure, so the pair is single-use.
func (h Handshake) Expire(w http.ResponseWriter) {
	for _, name := range []string{StateCookie, VerifierCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     CookiePath,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h Handshake) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     CookiePath,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.TTL.Seconds()),
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
