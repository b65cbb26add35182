package resolver

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound means no local account is linked to the Google identity.
// The caller routes the user to profile completion.
var ErrNotFound = errors.New("identity not registered")

// Resolver maps a Google subject id to a local user id. It is the only
// place identity-to-user lookup logic lives.
type Resolver interface {
	Resolve(ctx context.Context, googleID string) (userID string, err error)
}

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx, so the same lookup
// runs standalone at callback time and inside the provisioning
// transaction for the pre-insert re-check.
type Queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

func Lookup(ctx context.Context, q Queryer, googleID string) (string, error) {
	var userID string
	err := q.GetContext(ctx, &userID, `
		SELECT user_id
		FROM auth_identities
		WHERE google_id = $1
	`, googleID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
