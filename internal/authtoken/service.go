package authtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busbook/internal/shared/constants"
	"busbook/pkg/store"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrNoToken is returned when no session token is stored
	ErrNoToken = errors.New("no session token stored")
	// ErrTokenExpired is returned when the stored session token has expired
	ErrTokenExpired = errors.New("session token expired")
)

// Session is the stored session token and what could be read off it
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Service keeps the booking backend's session token between requests. The
// token is issued and validated by the backend; this service only stores it
// and discards it once its expiry claim has passed.
type Service interface {
	Save(ctx context.Context, token string) (*Session, error)
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

type service struct {
	store store.Service
}

func NewService(storeService store.Service) Service {
	return &service{store: storeService}
}

func (s *service) Save(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}

	session := &Session{Token: token}
	if expiresAt := expiryOf(token); expiresAt != nil {
		if time.Now().After(*expiresAt) {
			return nil, ErrTokenExpired
		}
		session.ExpiresAt = expiresAt
	}

	ttl := time.Duration(0)
	if session.ExpiresAt != nil {
		ttl = time.Until(*session.ExpiresAt)
	}
	if err := s.store.Set(ctx, constants.KeyAuthToken, session, ttl); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return session, nil
}

func (s *service) Load(ctx context.Context) (*Session, error) {
	var session Session
	if err := s.store.Get(ctx, constants.KeyAuthToken, &session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}

	if session.ExpiresAt != nil && time.Now().After(*session.ExpiresAt) {
		_ = s.store.Delete(ctx, constants.KeyAuthToken)
		return nil, ErrTokenExpired
	}
	return &session, nil
}

func (s *service) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, constants.KeyAuthToken); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

// expiryOf reads the exp claim without verifying the signature. Verification
// belongs to the backend that issued the token; opaque tokens get no expiry.
func expiryOf(token string) *time.Time {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	expiresAt := claims.ExpiresAt.Time
	return &expiresAt
}
