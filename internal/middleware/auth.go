// file: internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"vidhub/internal/models"
	"vidhub/internal/repositories"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"go.uber.org/zap"
)

// AccessTokenCookie is the cookie carrying the short-lived access token.
const AccessTokenCookie = "accessToken"

// RefreshTokenCookie is the cookie carrying the long-lived refresh token.
const RefreshTokenCookie = "refreshToken"

// Auth authenticates requests via the access token cookie or an
// Authorization bearer header and stores the account on the context.
// Requests without a valid token get a 401 envelope.
type Auth struct {
	tokens  services.TokenService
	users   repositories.UserRepository
	builder *response.Builder
	logger  *zap.Logger
}

// NewAuth creates the authentication middleware.
func NewAuth(
	tokens services.TokenService,
	users repositories.UserRepository,
	builder *response.Builder,
	logger *zap.Logger,
) *Auth {
	return &Auth{tokens: tokens, users: users, builder: builder, logger: logger}
}

// Require gates a subtree on a valid access token.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			a.builder.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (a *Auth) authenticate(r *http.Request) (*models.User, error) {
	token := extractToken(r)
	if token == "" {
		return nil, services.NewUnauthorizedError("authentication required")
	}

	userID, err := a.tokens.VerifyAccess(token)
	if err != nil {
		return nil, services.NewUnauthorizedError("invalid or expired access token")
	}

	user, err := a.users.GetByID(r.Context(), userID)
	if err != nil {
		// A valid token for a missing account still means no principal.
		a.logger.Warn("Token verified but account not found",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, services.NewUnauthorizedError("invalid or expired access token")
	}
	return user, nil
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, CurrentUserKey, user)
}

// GetUser returns the authenticated account stored on the context, or nil.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(CurrentUserKey).(*models.User); ok {
		return user
	}
	return nil
}

// GetUserID returns the authenticated account id, or 0.
func GetUserID(ctx context.Context) int64 {
	if user := GetUser(ctx); user != nil {
		return user.ID
	}
	return 0
}
