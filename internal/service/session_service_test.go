package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/counseling_portal/internal/auth"
	"github.com/Freeeeeet/counseling_portal/internal/model"
)

func TestSessionServiceLogin(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore()
	idp := &fakeIDP{credentials: map[string]string{"counselor@uni.edu": "secret"}}
	sessions := newTestSessions(idp, store)

	if _, err := sessions.Login(context.Background(), 42, "counselor@uni.edu", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	session, err := sessions.Login(context.Background(), 42, " counselor@uni.edu ", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Role != model.RoleCounselor || session.DisplayName != "Dana Reyes" || session.UserID != "user-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if !session.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", session.ExpiresAt)
	}

	stored, _ := store.GetByTelegramID(context.Background(), 42)
	if stored == nil || stored.AccessToken != "token-counselor@uni.edu" {
		t.Fatalf("session not stored: %+v", stored)
	}
}

func TestSessionServiceGetRefreshesNearExpiry(t *testing.T) {
	t.Parallel()

	expiring := counselorSession(1, "old")
	expiring.ExpiresAt = testNow.Add(30 * time.Second)
	store := newFakeSessionStore(expiring)
	idp := &fakeIDP{nextToken: "new"}
	sessions := newTestSessions(idp, store)

	session, err := sessions.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccessToken != "new" || session.RefreshToken != "refresh-1-next" || idp.refreshes != 1 {
		t.Fatalf("expected refreshed session, got %+v after %d refreshes", session, idp.refreshes)
	}

	if _, err := sessions.Get(context.Background(), 2); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSessionServiceCallRetriesOnceAfterUnauthorized(t *testing.T) {
	t.Parallel()

	session := counselorSession(1, "stale")
	store := newFakeSessionStore(session)
	idp := &fakeIDP{nextToken: "fresh"}
	backend := &fakeBackend{valid: map[string]bool{"fresh": true}}
	sessions := newTestSessions(idp, store)

	var tokens []string
	err := sessions.Call(context.Background(), &session, func(token string) error {
		tokens = append(tokens, token)
		return backend.check(token)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 2 || tokens[1] != "fresh" {
		t.Fatalf("expected one retry with the fresh token, got %v", tokens)
	}
	if session.AccessToken != "fresh" {
		t.Fatalf("session not updated in place: %+v", session)
	}
}

func TestSessionServiceRefreshFailureUnlinks(t *testing.T) {
	t.Parallel()

	session := counselorSession(1, "stale")
	store := newFakeSessionStore(session)
	idp := &fakeIDP{refreshErr: errBoom}
	backend := &fakeBackend{}
	sessions := newTestSessions(idp, store)

	err := sessions.Call(context.Background(), &session, backend.check)
	if !errors.Is(err, ErrSessionExpired) || !errors.Is(err, errBoom) {
		t.Fatalf("expected ErrSessionExpired joined with cause, got %v", err)
	}
	if stored, _ := store.GetByTelegramID(context.Background(), 1); stored != nil {
		t.Fatalf("expected session deleted, got %+v", stored)
	}
}

func TestSessionServiceLogout(t *testing.T) {
	t.Parallel()

	store := newFakeSessionStore(counselorSession(1, "token"))
	idp := &fakeIDP{}
	sessions := newTestSessions(idp, store)

	if err := sessions.Logout(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idp.signOuts != 1 {
		t.Fatalf("expected provider sign-out, got %d", idp.signOuts)
	}
	if err := sessions.Logout(context.Background(), 1); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn on second logout, got %v", err)
	}
}
