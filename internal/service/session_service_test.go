package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			TokenTTLDays: 7,
			BcryptCost:   4, // minimum cost keeps the suite fast
		},
		Admin: config.AdminConfig{Username: "admin"},
	}
}

func newSessionService() *service.SessionService {
	return service.NewSessionService(testConfig(), repository.NewInMemoryPrincipalRepository())
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	principal, token, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, domain.RoleAdmin, principal.Role)

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, claims.PrincipalID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRegister_EmptyFields(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	_, _, _, err := svc.Register(context.Background(), "", "pw")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, _, _, err = svc.Register(context.Background(), "admin", "")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	_, _, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "admin", "pw2")
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

// racingPrincipals hides existing rows from the advisory username lookup,
// so Create runs into the store's unique index the way the loser of a
// concurrent register does.
type racingPrincipals struct {
	*repository.InMemoryPrincipalRepository
}

func (racingPrincipals) GetByUsername(context.Context, string) (*domain.Principal, error) {
	return nil, pgx.ErrNoRows
}

func TestRegister_ConcurrentDuplicateMapsToConflict(t *testing.T) {
	t.Parallel()
	store := racingPrincipals{repository.NewInMemoryPrincipalRepository()}
	svc := service.NewSessionService(testConfig(), store)

	_, _, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), "admin", "pw2")
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestLogin_SuccessAndBothTokensVerify(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	principal, tokenA, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	_, tokenB, _, err := svc.Login(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	// Register and login tokens are independent sessions; both verify.
	for _, token := range []string{tokenA, tokenB} {
		claims, err := svc.TokenManager().Parse(token)
		require.NoError(t, err)
		assert.Equal(t, principal.ID, claims.PrincipalID)
	}
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	_, _, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	_, _, _, wrongPassErr := svc.Login(context.Background(), "admin", "nope")
	_, _, _, unknownUserErr := svc.Login(context.Background(), "ghost", "nope")

	wrong := apperrors.ToDomainError(wrongPassErr)
	unknown := apperrors.ToDomainError(unknownUserErr)
	assert.Equal(t, "INVALID_CREDENTIALS", wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Message, unknown.Message)
	assert.Equal(t, wrong.HTTPStatus, unknown.HTTPStatus)
}

func TestChangePassword_RejectsNoopChange(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	// Rejected before credentials are even checked.
	err := svc.ChangePassword(context.Background(), "ghost", "same", "same")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestChangePassword_MissingFields(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	err := svc.ChangePassword(context.Background(), "admin", "", "new")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestChangePassword_RotatesCredential(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	_, oldToken, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), "admin", "pw1", "pw2"))

	_, _, _, err = svc.Login(context.Background(), "admin", "pw1")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(t, err))

	_, _, _, err = svc.Login(context.Background(), "admin", "pw2")
	require.NoError(t, err)

	// Outstanding sessions survive a password change.
	_, err = svc.TokenManager().Parse(oldToken)
	assert.NoError(t, err)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	t.Parallel()
	svc := newSessionService()

	_, _, _, err := svc.Register(context.Background(), "admin", "pw1")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), "admin", "wrong", "pw2")
	assert.Equal(t, "INVALID_CREDENTIALS", errCode(t, err))
}
