package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidhub/internal/models"
	"vidhub/internal/repositories"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokens struct {
	userID int64
	err    error
}

func (f *fakeTokens) IssuePair(context.Context, int64) (*services.TokenPair, error) {
	return nil, nil
}

func (f *fakeTokens) VerifyAccess(string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.userID, nil
}

func (f *fakeTokens) Refresh(context.Context, string) (*services.TokenPair, int64, error) {
	return nil, 0, nil
}

func (f *fakeTokens) Revoke(context.Context, int64) error { return nil }

type fakeUsers struct {
	repositories.UserRepository
	user *models.User
	err  error
}

func (f *fakeUsers) GetByID(context.Context, int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newAuthHarness(tokens services.TokenService, users repositories.UserRepository) (*Auth, http.Handler) {
	builder := response.NewBuilder(zap.NewNop())
	auth := NewAuth(tokens, users, builder, zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return auth, next
}

func TestAuthRequireRejectsMissingToken(t *testing.T) {
	auth, next := newAuthHarness(&fakeTokens{userID: 1}, &fakeUsers{user: &models.User{ID: 1}})

	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequireRejectsInvalidToken(t *testing.T) {
	tokens := &fakeTokens{err: services.NewUnauthorizedError("invalid access token")}
	auth, next := newAuthHarness(tokens, &fakeUsers{user: &models.User{ID: 1}})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequireAcceptsCookie(t *testing.T) {
	want := &models.User{ID: 42, Username: "chai"}
	builder := response.NewBuilder(zap.NewNop())
	auth := NewAuth(&fakeTokens{userID: 42}, &fakeUsers{user: want}, builder, zap.NewNop())

	var got *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "valid-token"})
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, int64(42), GetUserID(context.WithValue(context.Background(), CurrentUserKey, got)))
}

func TestAuthRequireAcceptsBearerHeader(t *testing.T) {
	builder := response.NewBuilder(zap.NewNop())
	auth := NewAuth(&fakeTokens{userID: 7}, &fakeUsers{user: &models.User{ID: 7}}, builder, zap.NewNop())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequireRejectsDeletedAccount(t *testing.T) {
	auth, next := newAuthHarness(&fakeTokens{userID: 9}, &fakeUsers{err: repositories.ErrNotFound})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	auth.Require(next).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
