package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"classroom-auth/internal/auth"
	"classroom-auth/internal/auth/provider"
)

const issuer = "https://accounts.google.com"

type Provider struct {
	oauthConfig  *oauth2.Config
	oidcProvider *oidc.Provider
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig:  oauthCfg,
		oidcProvider: oidcProvider,
	}, nil
}

// AuthCodeURL builds the OAuth authorization URL with PKCE parameters.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (p *Provider) Exchange(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*oauth2.Token, error) {

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, classifyExchangeError(err)
	}

	return token, nil
}

// classifyExchangeError separates a rejected grant (4xx from the token
// endpoint) from network failures and provider 5xx.
func classifyExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil &&
		retrieveErr.Response.StatusCode < 500 {
		return fmt.Errorf("%w: %v", provider.ErrInvalidGrant, err)
	}
	return fmt.Errorf("google token exchange failed: %w", err)
}

func (p *Provider) FetchProfile(
	ctx context.Context,
	token *oauth2.Token,
) (*auth.Profile, error) {

	userInfo, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("google userinfo fetch failed: %w", err)
	}

	var claims struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("google userinfo claims parse failed: %w", err)
	}

	if userInfo.Subject == "" || userInfo.Email == "" {
		return nil, errors.New("google userinfo missing required claims")
	}

	return &auth.Profile{
		Subject:       userInfo.Subject,
		Email:         userInfo.Email,
		EmailVerified: userInfo.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}
