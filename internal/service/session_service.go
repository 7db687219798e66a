package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// SessionService coordinates the admin register/login/change-password
// flows against the principal store and the token manager.
type SessionService struct {
	principals repository.PrincipalRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewSessionService builds the service.
func NewSessionService(cfg config.Config, principals repository.PrincipalRepository) *SessionService {
	return &SessionService{
		principals: principals,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates the admin principal and issues a session token. The
// username lookup here is advisory; the store's unique constraint on
// username is what closes the concurrent-register race.
func (s *SessionService) Register(ctx context.Context, username, password string) (*domain.Principal, string, time.Time, error) {
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("both username and password are required", nil)
	}

	if _, err := s.principals.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("admin already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	principal := &domain.Principal{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.principals.Create(ctx, principal); err != nil {
		// The unique index catches the loser of a concurrent register.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, "", time.Time{}, apperrors.NewConflict("admin already registered", nil)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokenMgr.Generate(principal.ID, principal.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return principal, token, exp, nil
}

// Login authenticates the admin and issues a fresh token. Unknown
// username and wrong password produce the same rejection.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Principal, string, time.Time, error) {
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("both username and password are required", nil)
	}

	principal, err := s.principals.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(principal.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Generate(principal.ID, principal.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return principal, token, exp, nil
}

// ChangePassword verifies the old password before storing a fresh hash.
// Outstanding tokens stay valid until natural expiry; stateless sessions
// cannot be revoked here.
func (s *SessionService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if username == "" || oldPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("please provide username, old password, and new password", nil)
	}
	if newPassword == oldPassword {
		return apperrors.NewValidationError("new password must differ from the old password", nil)
	}

	principal, err := s.principals.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInvalidCredentials()
		}
		return apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(principal.PasswordHash, oldPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	principal.PasswordHash = hash
	if err := s.principals.Update(ctx, principal); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
