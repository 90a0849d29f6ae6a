// internal/services/token_service.go
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strconv"
	"time"

	"vidhub/internal/config"
	"vidhub/internal/repositories"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService issues, verifies and rotates the signed session tokens.
// Exactly one refresh token is active per user: issuing a pair overwrites
// the stored token, which revokes every previously issued refresh token.
type TokenService interface {
	IssuePair(ctx context.Context, userID int64) (*TokenPair, error)
	VerifyAccess(token string) (int64, error)
	Refresh(ctx context.Context, presented string) (*TokenPair, int64, error)
	Revoke(ctx context.Context, userID int64) error
}

type tokenService struct {
	users  repositories.UserRepository
	cfg    *config.AuthConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(users repositories.UserRepository, cfg *config.AuthConfig, logger *zap.Logger) TokenService {
	return &tokenService{users: users, cfg: cfg, logger: logger, now: time.Now}
}

// IssuePair signs a new access/refresh pair and persists the refresh token
// on the user record.
func (s *tokenService) IssuePair(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := s.sign(userID, s.cfg.AccessTokenSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, NewInternalError("failed to sign access token", err)
	}
	refresh, err := s.sign(userID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, NewInternalError("failed to sign refresh token", err)
	}

	if err := s.users.SetRefreshToken(ctx, userID, &refresh); err != nil {
		return nil, NewInternalError("failed to persist refresh token", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates the access token and returns the principal id.
// Missing, malformed, expired and tampered tokens all collapse to the same
// unauthorized error.
func (s *tokenService) VerifyAccess(token string) (int64, error) {
	userID, err := s.parse(token, s.cfg.AccessTokenSecret)
	if err != nil {
		return 0, NewUnauthorizedError("invalid access token")
	}
	return userID, nil
}

// Refresh rotates the session: the presented token must carry a valid
// signature and equal the token currently stored for that user.
func (s *tokenService) Refresh(ctx context.Context, presented string) (*TokenPair, int64, error) {
	userID, err := s.parse(presented, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, 0, NewUnauthorizedError("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, NewUnauthorizedError("invalid refresh token")
	}
	if user.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(presented)) != 1 {
		s.logger.Warn("Refresh token mismatch, possible reuse of a superseded token",
			zap.Int64("user_id", userID),
		)
		return nil, 0, NewUnauthorizedError("refresh token is expired or has been used")
	}

	pair, err := s.IssuePair(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return pair, userID, nil
}

// Revoke clears the stored refresh token, ending the session.
func (s *tokenService) Revoke(ctx context.Context, userID int64) error {
	if err := s.users.SetRefreshToken(ctx, userID, nil); err != nil {
		return NewInternalError("failed to revoke session", err)
	}
	return nil
}

func (s *tokenService) sign(userID int64, secret string, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *tokenService) parse(raw, secret string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || token == nil || !token.Valid {
		return 0, errInvalidToken
	}
	userID, parseErr := strconv.ParseInt(claims.Subject, 10, 64)
	if parseErr != nil || userID <= 0 {
		return 0, errInvalidToken
	}
	return userID, nil
}

var errInvalidToken = errors.New("invalid token")
