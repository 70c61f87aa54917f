package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/store"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService authenticates the single local account and issues tokens.
type AuthService interface {
	// Login checks the email/password pair against the stored account and
	// returns a fresh token pair. Returns ErrInvalidCredentials when the
	// pair does not match.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// EnsureDefaultUser seeds the account record on first start. It is a
	// no-op when a user already exists.
	EnsureDefaultUser(ctx context.Context, email, password string) error
}

type authService struct {
	users    *store.Collection[domain.User]
	jwt      JWTService
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewAuthService creates an AuthService over the given record store.
func NewAuthService(rs store.RecordStore, jwtService JWTService, verifier PasswordVerifier, log *slog.Logger) (AuthService, error) {
	if rs == nil {
		return nil, domain.NewValidationError("recordStore", "cannot be nil", nil)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", nil)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("passwordVerifier", "cannot be nil", nil)
	}
	if log == nil {
		return nil, domain.NewValidationError("logger", "cannot be nil", nil)
	}

	return &authService{
		users:    store.NewCollection[domain.User](rs, store.TableUser),
		jwt:      jwtService,
		verifier: verifier,
		logger:   log.With(slog.String("component", "auth_service")),
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	// A missing account and a wrong password produce the same error so the
	// response does not reveal which part failed.
	if user == nil || user.Email != email {
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Warn("failed login attempt", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	// The account may have been replaced by a backup import since the
	// token was issued; re-check it still exists.
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID != claims.UserID {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(ctx, user.ID)
}

func (s *authService) EnsureDefaultUser(ctx context.Context, email, password string) error {
	existing, err := s.currentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	user, err := domain.NewUser(email, hash)
	if err != nil {
		return fmt.Errorf("failed to build default user: %w", err)
	}

	if err := s.users.Put(ctx, user.ID, user); err != nil {
		return fmt.Errorf("failed to store default user: %w", err)
	}

	s.logger.Info("seeded default user", slog.String("email", email))
	return nil
}

// currentUser returns the single stored account, or nil when none exists.
func (s *authService) currentUser(ctx context.Context) (*domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (s *authService) issueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
