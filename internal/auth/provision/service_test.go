package provision

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{
		"teacher": true,
		"student": true,
		"admin":   false,
		"":        false,
		"Teacher": false,
	} {
		if got := ValidRole(role); got != want {
			t.Fatalf("ValidRole(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "auth_identities_google_id_unique"}
	if !isUniqueViolation(unique) {
		t.Fatal("expected 23505 to classify as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("provision: insert identity: %w", unique)) {
		t.Fatal("expected wrapped 23505 to classify as unique violation")
	}

	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign key violation must not classify as unique violation")
	}
	if isUniqueViolation(errors.New("connection reset")) {
		t.Fatal("plain error must not classify as unique violation")
	}
	if isUniqueViolation(nil) {
		t.Fatal("nil must not classify as unique violation")
	}
}
