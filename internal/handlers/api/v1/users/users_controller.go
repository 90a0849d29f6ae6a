// ===============================
// FILE: internal/handlers/api/v1/users/users_controller.go
// ===============================

package users

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"vidhub/internal/config"
	"vidhub/internal/middleware"
	"vidhub/internal/models"
	"vidhub/internal/response"
	"vidhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserController handles account, session and channel endpoints.
type UserController struct {
	services *services.ServiceCollection
	cfg      *config.AuthConfig
	logger   *zap.Logger
	builder  *response.Builder
}

// NewUserController creates a new user controller.
func NewUserController(
	sc *services.ServiceCollection,
	cfg *config.AuthConfig,
	logger *zap.Logger,
	builder *response.Builder,
) *UserController {
	return &UserController{services: sc, cfg: cfg, logger: logger, builder: builder}
}

// ===============================
// REGISTRATION AND SESSIONS
// ===============================

// Register handles POST /api/v1/users/register (multipart form).
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("expected multipart form data", err))
		return
	}

	req := &services.RegisterUserRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}
	req.Avatar = formFileHeader(r, "avatar")
	req.CoverImage = formFileHeader(r, "coverImage")

	user, err := c.services.Users.Register(r.Context(), req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteCreated(w, r, user, "user registered successfully")
}

// Login handles POST /api/v1/users/login.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	result, err := c.services.Users.Login(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.setAuthCookies(w, result.Tokens)
	c.builder.WriteSuccess(w, r, result, "logged in successfully")
}

// Logout handles POST /api/v1/users/logout.
func (c *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if err := c.services.Users.Logout(r.Context(), userID); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.clearAuthCookies(w)
	c.builder.WriteSuccess(w, r, nil, "logged out successfully")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The refresh token
// comes from the cookie or, failing that, the JSON body.
func (c *UserController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			token = body.RefreshToken
		}
	}
	if token == "" {
		c.builder.WriteError(w, r, services.NewUnauthorizedError("refresh token required"))
		return
	}

	result, err := c.services.Users.RefreshSession(r.Context(), token)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}

	c.setAuthCookies(w, result.Tokens)
	c.builder.WriteSuccess(w, r, result.Tokens, "access token refreshed")
}

// ===============================
// ACCOUNT
// ===============================

// CurrentUser handles GET /api/v1/users/current-user.
func (c *UserController) CurrentUser(w http.ResponseWriter, r *http.Request) {
	c.builder.WriteSuccess(w, r, middleware.GetUser(r.Context()), "current user fetched")
}

// UpdateProfile handles PATCH /api/v1/users/update-account.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = middleware.GetUserID(r.Context())

	user, err := c.services.Users.UpdateProfile(r.Context(), &req)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, user, "account updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar (multipart form).
func (c *UserController) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	c.updateImage(w, r, "avatar", c.services.Users.UpdateAvatar)
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image (multipart form).
func (c *UserController) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	c.updateImage(w, r, "coverImage", c.services.Users.UpdateCoverImage)
}

// ChangePassword handles POST /api/v1/users/change-password.
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req services.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.UserID = middleware.GetUserID(r.Context())

	if err := c.services.Users.ChangePassword(r.Context(), &req); err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, nil, "password changed successfully")
}

// ===============================
// CHANNEL READ MODELS
// ===============================

// ChannelProfile handles GET /api/v1/users/c/{username}.
func (c *UserController) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		c.builder.WriteError(w, r, services.NewValidationError("username is required", nil))
		return
	}

	var viewerID *int64
	if id := middleware.GetUserID(r.Context()); id != 0 {
		viewerID = &id
	}

	profile, err := c.services.Users.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, profile, "channel profile fetched")
}

// WatchHistory handles GET /api/v1/users/history.
func (c *UserController) WatchHistory(w http.ResponseWriter, r *http.Request) {
	page, pageSize := response.ParsePagination(r)
	history, err := c.services.Users.GetWatchHistory(r.Context(), middleware.GetUserID(r.Context()), page, pageSize)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, history, "watch history fetched")
}

// ===============================
// HELPERS
// ===============================

func (c *UserController) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error),
) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		c.builder.WriteError(w, r, services.NewValidationError("expected multipart form data", err))
		return
	}
	header := formFileHeader(r, field)
	if header == nil {
		c.builder.WriteError(w, r, services.NewValidationError(field+" file is required", nil))
		return
	}

	user, err := update(r.Context(), middleware.GetUserID(r.Context()), header)
	if err != nil {
		c.builder.WriteError(w, r, err)
		return
	}
	c.builder.WriteSuccess(w, r, user, field+" updated successfully")
}

func (c *UserController) setAuthCookies(w http.ResponseWriter, pair *services.TokenPair) {
	http.SetCookie(w, c.authCookie(middleware.AccessTokenCookie, pair.AccessToken, c.cfg.AccessTokenTTL))
	http.SetCookie(w, c.authCookie(middleware.RefreshTokenCookie, pair.RefreshToken, c.cfg.RefreshTokenTTL))
}

func (c *UserController) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, c.authCookie(middleware.AccessTokenCookie, "", -time.Hour))
	http.SetCookie(w, c.authCookie(middleware.RefreshTokenCookie, "", -time.Hour))
}

func (c *UserController) authCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// formFileHeader reads a parsed form's file header without opening the
// file the way FormFile would.
func formFileHeader(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File[field]; len(headers) > 0 {
		return headers[0]
	}
	return nil
}
