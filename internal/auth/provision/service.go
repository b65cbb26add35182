// Package provision creates a user account and its Google identity
// linkage as one atomic unit. Either both rows exist after a call or
// neither does.
package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"classroom-auth/internal/auth/resolver"
	"classroom-auth/internal/db"
	"classroom-auth/internal/logger"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

func ValidRole(role string) bool {
	return role == RoleTeacher || role == RoleStudent
}

// Params is the full tuple required to provision an account. UserID and
// the identity fields come from the signed pending-provisioning token;
// Name and Role come from the completion form.
type Params struct {
	UserID   string
	GoogleID string
	Email    string
	Name     string
	Role     string
	Picture  string
}

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

// Provision inserts the users row and the auth_identities row in one
// transaction. A concurrent provisioning of the same google_id is folded
// into success: the unique-constraint violation is translated into a
// lookup of the winner's account, never surfaced to the user.
func (s *Service) Provision(ctx context.Context, p Params) (string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("provision: begin: %w", err)
	}

	userID, err := s.create(ctx, tx, p)
	if err == nil {
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("provision: commit: %w", err)
		}
		logger.Info("user provisioned",
			"user_id", userID,
			"role", p.Role,
		)
		return userID, nil
	}

	_ = tx.Rollback()

	if isUniqueViolation(err) {
		logger.Warn("concurrent provisioning detected, reusing existing account",
			"google_id", p.GoogleID,
		)
		return resolver.Lookup(ctx, s.db, p.GoogleID)
	}

	return "", err
}

func (s *Service) create(ctx context.Context, tx *sqlx.Tx, p Params) (string, error) {
	// Re-check inside the transaction: a racing callback may have
	// provisioned this identity after the caller's lookup.
	existing, err := resolver.Lookup(ctx, tx, p.GoogleID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, resolver.ErrNotFound) {
		return "", fmt.Errorf("provision: re-resolve: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, picture)
		VALUES ($1, $2, $3, $4, $5)
	`, p.UserID, p.Name, p.Email, p.Role, p.Picture); err != nil {
		return "", fmt.Errorf("provision: insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO auth_identities (user_id, google_id, email)
		VALUES ($1, $2, $3)
	`, p.UserID, p.GoogleID, p.Email); err != nil {
		return "", fmt.Errorf("provision: insert identity: %w", err)
	}

	return p.UserID, nil
}

// 23505 is Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
