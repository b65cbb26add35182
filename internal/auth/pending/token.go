// Package pending signs the provisioning tuple that travels through the
// profile-completion redirect. The completion endpoint trusts identity
// fields only when they match this token, never the raw form values, so a
// client cannot provision an account under an arbitrary Google identity.
package pending

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("pending provisioning token invalid")

// Provisioning is the server-resolved identity awaiting profile completion.
type Provisioning struct {
	UserID   string
	GoogleID string
	Email    string
	Picture  string
}

type claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	GoogleID string `json:"gid"`
	Email    string `json:"email"`
	Picture  string `json:"picture,omitempty"`
}

type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

func (s *Signer) Sign(p Provisioning) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   p.UserID,
		GoogleID: p.GoogleID,
		Email:    p.Email,
		Picture:  p.Picture,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("pending: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates the token and returns the provisioning
// tuple it carries. Expired, tampered, or foreign tokens all map to
// ErrTokenInvalid.
func (s *Signer) Verify(raw string) (*Provisioning, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if c.UserID == "" || c.GoogleID == "" || c.Email == "" {
		return nil, ErrTokenInvalid
	}

	return &Provisioning{
		UserID:   c.UserID,
		GoogleID: c.GoogleID,
		Email:    c.Email,
		Picture:  c.Picture,
	}, nil
}
