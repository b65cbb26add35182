package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"classroom-auth/internal/db"
)

var ErrNotFound = errors.New("user not found")

// Finder is the read-side contract consumed by the auth middleware and
// the /api/me handler.
type Finder interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

type Repository struct {
	db *db.DB
}

func NewRepository(db *db.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, name, email, role, picture, created_at
		FROM users
		WHERE id = $1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user: get by id: %w", err)
	}
	return &u, nil
}
