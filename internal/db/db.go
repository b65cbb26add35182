package db

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB wraps the sqlx handle so callers depend on this package, not on the
// driver directly.
type DB struct {
	*sqlx.DB
}

func Connect(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{DB: conn}, nil
}
