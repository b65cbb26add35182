package db

import (
	"context"
)

// The users row and its auth_identities linkage are always created together
// inside one transaction; the unique index on google_id is the backstop
// against two concurrent callbacks provisioning the same Google account.
const schemaMigration = `
CREATE TABLE IF NOT EXISTS users (
    id text PRIMARY KEY,
    name text NOT NULL,
    email text NOT NULL,
    role text NOT NULL CHECK (role IN ('teacher', 'student')),
    picture text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS auth_identities (
    user_id text PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    google_id text NOT NULL,
    email text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT auth_identities_google_id_unique UNIQUE (google_id)
);
`

func RunMigrations(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
