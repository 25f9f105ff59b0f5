package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pet-sitter.com/pet-sitter/internal/cache"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	model "pet-sitter.com/pet-sitter/internal/models"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

const (
	tokenIssuer      = "pet-sitter-api"
	authSnapshotTTL  = 30 * time.Second
	authSnapshotKeyP = "auth:user:"
)

// Claims carries the password generation the token was issued under; any
// later password change makes it stale.
type Claims struct {
	PasswordGeneration int64 `json:"pwg"`
	jwt.RegisteredClaims
}

type authSnapshot struct {
	PasswordGeneration int64 `json:"pwg"`
}

type AuthService struct {
	store      *repository.Store
	cache      cache.Cache
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(store *repository.Store, c cache.Cache, secret string, ttl time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		store:      store,
		cache:      c,
		secret:     []byte(secret),
		ttl:        ttl,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           model.NewID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ChangePassword replaces the password and returns a fresh token; every token
// issued before the change stops authenticating.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (string, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	changedAt := s.now()
	if user.PasswordChangedAt != nil && !changedAt.After(*user.PasswordChangedAt) {
		changedAt = user.PasswordChangedAt.Add(time.Microsecond)
	}
	if err := s.store.Users.UpdatePassword(ctx, user.ID, string(hash), changedAt); err != nil {
		return "", err
	}

	if err := s.cache.Delete(ctx, authSnapshotKeyP+user.ID); err != nil {
		slog.WarnContext(ctx, "failed to evict auth snapshot", "user_id", user.ID, "error", err)
	}

	user.PasswordHash = string(hash)
	user.PasswordChangedAt = &changedAt
	return s.issue(user)
}

// Authenticate verifies a bearer token and returns the user id it carries.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}

	snapshot, err := s.snapshot(ctx, claims.Subject, false)
	if err == nil && claims.PasswordGeneration > snapshot.PasswordGeneration {
		// The cached entry predates the password change this token was issued
		// after; it was stored by a read that raced the eviction.
		snapshot, err = s.snapshot(ctx, claims.Subject, true)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidToken
		}
		return "", err
	}
	if claims.PasswordGeneration < snapshot.PasswordGeneration {
		return "", apperrors.ErrStaleToken
	}

	return claims.Subject, nil
}

// snapshot returns the user's password generation, from the cache unless
// reload is set.
func (s *AuthService) snapshot(ctx context.Context, userID string, reload bool) (authSnapshot, error) {
	key := authSnapshotKeyP + userID

	if !reload {
		if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var snap authSnapshot
			if err := json.Unmarshal(raw, &snap); err == nil {
				return snap, nil
			}
		}
	}

	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return authSnapshot{}, err
	}

	snap := authSnapshot{PasswordGeneration: passwordGeneration(user)}
	if raw, err := json.Marshal(snap); err == nil {
		if err := s.cache.Set(ctx, key, raw, authSnapshotTTL); err != nil {
			slog.WarnContext(ctx, "failed to cache auth snapshot", "user_id", userID, "error", err)
		}
	}
	return snap, nil
}

func (s *AuthService) issue(user *model.User) (string, error) {
	now := s.now()
	claims := Claims{
		PasswordGeneration: passwordGeneration(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func passwordGeneration(user *model.User) int64 {
	if user.PasswordChangedAt == nil {
		return 0
	}
	return user.PasswordChangedAt.UnixMicro()
}
