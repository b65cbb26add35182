package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"classroom-auth/internal/session"
	"classroom-auth/internal/user"
)

type stubSessionStore struct {
	getFn   func(sessionID string) (*session.Session, error)
	deleted []string
}

func (s *stubSessionStore) Create(_ context.Context, _ session.Session) error { return nil }

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (*session.Session, error) {
	if s.getFn == nil {
		return nil, nil
	}
	return s.getFn(sessionID)
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	s.deleted = append(s.deleted, sessionID)
	return nil
}

type stubFinder struct {
	getByIDFn func(id string) (*user.User, error)
}

func (s *stubFinder) GetByID(_ context.Context, id string) (*user.User, error) {
	if s.getByIDFn == nil {
		return nil, user.ErrNotFound
	}
	return s.getByIDFn(id)
}

func callProtected(t *testing.T, mw *AuthMiddleware, sessionID string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	return rec, gotUserID
}

func TestRequireAuthNoCookie(t *testing.T) {
	mw := NewAuthMiddleware(&stubSessionStore{}, &stubFinder{})

	rec, _ := callProtected(t, mw, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthUnknownSession(t *testing.T) {
	mw := NewAuthMiddleware(&stubSessionStore{}, &stubFinder{})

	rec, _ := callProtected(t, mw, "ghost")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthExpiredSessionIsDropped(t *testing.T) {
	store := &stubSessionStore{
		getFn: func(id string) (*session.Session, error) {
			return &session.Session{
				SessionID: id,
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	mw := NewAuthMiddleware(store, &stubFinder{})

	rec, _ := callProtected(t, mw, "sid-1")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "sid-1" {
		t.Fatalf("expired session not deleted: %v", store.deleted)
	}
}

func TestRequireAuthSessionWithoutUserIsDropped(t *testing.T) {
	store := &stubSessionStore{
		getFn: func(id string) (*session.Session, error) {
			return &session.Session{
				SessionID: id,
				UserID:    "deleted-user",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	finder := &stubFinder{
		getByIDFn: func(string) (*user.User, error) { return nil, user.ErrNotFound },
	}
	mw := NewAuthMiddleware(store, finder)

	rec, _ := callProtected(t, mw, "sid-1")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("orphan session not deleted: %v", store.deleted)
	}
}

func TestRequireAuthValidSession(t *testing.T) {
	store := &stubSessionStore{
		getFn: func(id string) (*session.Session, error) {
			return &session.Session{
				SessionID: id,
				UserID:    "user-1",
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	finder := &stubFinder{
		getByIDFn: func(id string) (*user.User, error) {
			return &user.User{ID: id, Role: "teacher"}, nil
		},
	}
	mw := NewAuthMiddleware(store, finder)

	rec, gotUserID := callProtected(t, mw, "sid-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Fatalf("user id in context = %q", gotUserID)
	}
}
