package auth

// Profile is the normalized identity returned by the OAuth provider.
// It contains facts only, no decisions.
type Profile struct {
	Subject       string // provider-scoped stable user identifier (sub)
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}
