package services

import (
	"context"
	"testing"
	"time"

	"vidhub/internal/config"
	"vidhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    24 * time.Hour,
	}
}

// tokenHarness wires a token service against an in-memory user record so
// rotation round-trips behave like the real store.
type tokenHarness struct {
	svc    *tokenService
	stored *string
}

func newTokenHarness(t *testing.T) *tokenHarness {
	t.Helper()
	h := &tokenHarness{}
	repo := &mockUserRepo{
		setRefreshTokenFn: func(_ context.Context, _ int64, token *string) error {
			h.stored = token
			return nil
		},
		getByIDFn: func(_ context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id, RefreshToken: h.stored}, nil
		},
	}
	h.svc = NewTokenService(repo, testAuthConfig(), zap.NewNop()).(*tokenService)
	return h
}

func TestTokenServiceIssueAndVerify(t *testing.T) {
	h := newTokenHarness(t)

	pair, err := h.svc.IssuePair(context.Background(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, h.stored)
	assert.Equal(t, pair.RefreshToken, *h.stored)

	userID, err := h.svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestTokenServiceVerifyRejectsGarbage(t *testing.T) {
	h := newTokenHarness(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := h.svc.VerifyAccess(token)
		assertStatus(t, err, 401)
	}
}

func TestTokenServiceVerifyRejectsExpired(t *testing.T) {
	h := newTokenHarness(t)

	issued := time.Now()
	h.svc.now = func() time.Time { return issued }
	pair, err := h.svc.IssuePair(context.Background(), 7)
	require.NoError(t, err)

	h.svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = h.svc.VerifyAccess(pair.AccessToken)
	assertStatus(t, err, 401)
}

func TestTokenServiceVerifyRejectsRefreshAsAccess(t *testing.T) {
	h := newTokenHarness(t)

	pair, err := h.svc.IssuePair(context.Background(), 7)
	require.NoError(t, err)

	// Signed with the refresh secret, so the access verifier must reject it.
	_, err = h.svc.VerifyAccess(pair.RefreshToken)
	assertStatus(t, err, 401)
}

func TestTokenServiceRefreshRotates(t *testing.T) {
	h := newTokenHarness(t)
	ctx := context.Background()

	h.svc.now = func() time.Time { return time.Now() }
	first, err := h.svc.IssuePair(ctx, 7)
	require.NoError(t, err)

	// Advance the clock so the rotated token differs from the first.
	h.svc.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	second, userID, err := h.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, second.RefreshToken, *h.stored)
}

func TestTokenServiceRefreshRejectsSupersededToken(t *testing.T) {
	h := newTokenHarness(t)
	ctx := context.Background()

	h.svc.now = func() time.Time { return time.Now() }
	first, err := h.svc.IssuePair(ctx, 7)
	require.NoError(t, err)

	h.svc.now = func() time.Time { return time.Now().Add(2 * time.Second) }
	_, _, err = h.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)

	// The first token still has a valid signature but no longer matches
	// the stored one.
	_, _, err = h.svc.Refresh(ctx, first.RefreshToken)
	assertStatus(t, err, 401)
}

func TestTokenServiceRevoke(t *testing.T) {
	h := newTokenHarness(t)
	ctx := context.Background()

	pair, err := h.svc.IssuePair(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, h.svc.Revoke(ctx, 7))
	assert.Nil(t, h.stored)

	_, _, err = h.svc.Refresh(ctx, pair.RefreshToken)
	assertStatus(t, err, 401)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*ServiceError)
	require.True(t, ok, "expected *ServiceError, got %T", err)
	assert.Equal(t, want, svcErr.GetStatusCode())
}
