package resolver

import (
	"context"

	"classroom-auth/internal/db"
)

// DBResolver resolves identities against the relational store.
type DBResolver struct {
	db *db.DB
}

func NewDBResolver(db *db.DB) *DBResolver {
	return &DBResolver{db: db}
}

func (r *DBResolver) Resolve(ctx context.Context, googleID string) (string, error) {
	return Lookup(ctx, r.db, googleID)
}
