package provider

import (
	"context"
	"errors"

	"golang.org/x/oauth2"

	"classroom-auth/internal/auth"
)

// ErrInvalidGrant marks an authorization code the provider refused:
// expired, already redeemed, or not ours. Authorization codes are
// single-use, so the flow must restart from login; retrying the same
// exchange is guaranteed to fail.
var ErrInvalidGrant = errors.New("authorization code rejected by provider")

// Provider is the contract with the external identity provider.
// Implementations return identity facts only and must not create users,
// link identities, or manage sessions.
type Provider interface {
	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// Exchange swaps the authorization code for provider tokens.
	// A 4xx from the token endpoint surfaces as ErrInvalidGrant.
	Exchange(ctx context.Context, code string, codeVerifier string) (*oauth2.Token, error)

	// FetchProfile loads the profile of the token subject from the
	// provider's userinfo endpoint.
	FetchProfile(ctx context.Context, token *oauth2.Token) (*auth.Profile, error)
}
