package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

func newTestAuthService(t *testing.T, f *fixture) *AuthService {
	t.Helper()

	s := NewAuthService(f.store, newTestCache(t), "test-secret", time.Hour, bcrypt.MinCost)
	s.now = func() time.Time { return f.now }
	return s
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newTestAuthService(t, f)

	user, err := auth.Register(ctx, "  Jane@Example.com ", "Jane", "correct horse")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password must be hashed")
	}

	if _, err := auth.Register(ctx, "jane@example.com", "Jane", "another one"); !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	token, _, err := auth.Login(ctx, "JANE@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	userID, err := auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected subject %s, got %s", user.ID, userID)
	}

	if _, _, err := auth.Login(ctx, "jane@example.com", "wrong password"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_PasswordChangeInvalidatesOlderTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newTestAuthService(t, f)

	if _, err := auth.Register(ctx, "sam@example.com", "Sam", "first-password"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldToken, user, err := auth.Login(ctx, "sam@example.com", "first-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Caches the pre-change snapshot.
	if _, err := auth.Authenticate(ctx, oldToken); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if _, err := auth.ChangePassword(ctx, user.ID, "wrong", "second-password"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	newToken, err := auth.ChangePassword(ctx, user.ID, "first-password", "second-password")
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := auth.Authenticate(ctx, oldToken); !errors.Is(err, apperrors.ErrStaleToken) {
		t.Errorf("expected ErrStaleToken for a token issued before the change, got %v", err)
	}
	if _, err := auth.Authenticate(ctx, newToken); err != nil {
		t.Errorf("expected the new token to authenticate, got %v", err)
	}

	if _, _, err := auth.Login(ctx, "sam@example.com", "second-password"); err != nil {
		t.Errorf("expected login with the new password, got %v", err)
	}
}

func TestAuthService_NewerTokenRefreshesStaleSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := newTestCache(t)
	auth := NewAuthService(f.store, c, "test-secret", time.Hour, bcrypt.MinCost)
	auth.now = func() time.Time { return f.now }

	if _, err := auth.Register(ctx, "kim@example.com", "Kim", "first-password"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldToken, user, err := auth.Login(ctx, "kim@example.com", "first-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	staleGeneration := passwordGeneration(user)

	newToken, err := auth.ChangePassword(ctx, user.ID, "first-password", "second-password")
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// A reader that loaded the row before the change stores it after the eviction.
	raw, _ := json.Marshal(authSnapshot{PasswordGeneration: staleGeneration})
	if err := c.Set(ctx, authSnapshotKeyP+user.ID, raw, authSnapshotTTL); err != nil {
		t.Fatalf("cache set failed: %v", err)
	}

	if _, err := auth.Authenticate(ctx, newToken); err != nil {
		t.Fatalf("expected the new token to authenticate, got %v", err)
	}
	if _, err := auth.Authenticate(ctx, oldToken); !errors.Is(err, apperrors.ErrStaleToken) {
		t.Errorf("expected ErrStaleToken once the snapshot was refreshed, got %v", err)
	}
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newTestAuthService(t, f)

	if _, err := auth.Register(ctx, "kim@example.com", "Kim", "a-password"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := auth.Login(ctx, "kim@example.com", "a-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := auth.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	other := NewAuthService(f.store, newTestCache(t), "other-secret", time.Hour, bcrypt.MinCost)
	other.now = auth.now
	if _, err := other.Authenticate(ctx, token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for a foreign signature, got %v", err)
	}

	f.now = f.now.Add(2 * time.Hour)
	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for an expired token, got %v", err)
	}
}
