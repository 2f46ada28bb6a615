package auth

import (
	"context"
	"testing"
	"time"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/internal/domain/types"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestTokenService(users *fakeUserRepo) *TokenService {
	return NewTokenService(
		testSecret,
		users,
		newFakeBlacklist(),
		fakeTxManager{},
		15*time.Minute,
		7*24*time.Hour,
		logger.InitLogger("test", logger.LevelError),
	)
}

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Username: "alice",
	}
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestTokenService(users)

	user := testUser()
	pair, err := svc.Generate(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := svc.Validate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.AccessToken, access.TokenType)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, user.Email, access.Email)
	assert.Equal(t, user.Username, access.Username)

	refresh, err := svc.Validate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, models.RefreshToken, refresh.TokenType)
	assert.Equal(t, user.ID, refresh.UserID)
	assert.NotEqual(t, access.TokenID, refresh.TokenID)
}

func TestGenerateNilUser(t *testing.T) {
	svc := newTestTokenService(newFakeUserRepo())
	_, err := svc.Generate(context.Background(), nil)
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestTokenService(users)

	user := testUser()
	users.add(user)

	pair, err := svc.Generate(ctx, user)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	// A new access token is minted; the refresh token is echoed back.
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

	claims, err := svc.Validate(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.AccessToken, claims.TokenType)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestTokenService(users)

	user := testUser()
	users.add(user)

	pair, err := svc.Generate(ctx, user)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestRefreshUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newFakeUserRepo())

	// User was never stored, so the refresh token points at nothing.
	pair, err := svc.Generate(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestTokenService(users)

	user := testUser()
	users.add(user)

	pair, err := svc.Generate(ctx, user)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken))

	// A revoked token can no longer be refreshed or revoked again.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	err = svc.Revoke(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestRevokeRejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newTestTokenService(users)

	user := testUser()
	users.add(user)

	pair, err := svc.Generate(ctx, user)
	require.NoError(t, err)

	err = svc.Revoke(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestValidateTamperedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestTokenService(newFakeUserRepo())

	pair, err := svc.Generate(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.Validate(ctx, pair.AccessToken+"x")
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	_, err = svc.Validate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()

	issuer := newTestTokenService(users)
	verifier := NewTokenService(
		"a-different-secret",
		users,
		newFakeBlacklist(),
		fakeTxManager{},
		15*time.Minute,
		7*24*time.Hour,
		logger.InitLogger("test", logger.LevelError),
	)

	pair, err := issuer.Generate(ctx, testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()

	svc := NewTokenService(
		testSecret,
		users,
		newFakeBlacklist(),
		fakeTxManager{},
		-time.Minute,
		-time.Minute,
		logger.InitLogger("test", logger.LevelError),
	)

	pair, err := svc.Generate(ctx, testUser())
	require.NoError(t, err)

	_, err = svc.Validate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, types.ErrExpiredToken)
}
