// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"vidhub/internal/config"
	"vidhub/internal/media"
	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned by login and refresh: the sanitized user plus the
// freshly issued token pair.
type AuthResult struct {
	User   *models.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// UserService covers accounts, sessions and the user-scoped read models.
type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResult, error)
	Logout(ctx context.Context, userID int64) error
	RefreshSession(ctx context.Context, presented string) (*AuthResult, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error)
	UpdateCoverImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error)
	ChangePassword(ctx context.Context, req *ChangePasswordRequest) error
	GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*models.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID int64, page, pageSize int) (*models.PaginatedResponse[*models.WatchHistoryEntry], error)
	RecordWatch(ctx context.Context, userID, videoID int64) error
}

type userService struct {
	users   repositories.UserRepository
	tokens  TokenService
	storage media.Storage
	cfg     *config.AuthConfig
	logger  *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users repositories.UserRepository,
	tokens TokenService,
	storage media.Storage,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) UserService {
	return &userService{users: users, tokens: tokens, storage: storage, cfg: cfg, logger: logger}
}

// Register creates an account. Username and email must be unused; the
// avatar upload is mandatory.
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Avatar == nil {
		return nil, NewValidationError("avatar image is required", nil)
	}

	existing, err := s.users.GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, NewInternalError("failed to check existing users", err)
	}
	if existing != nil {
		return nil, NewConflictError("username or email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}

	avatar, err := s.storage.Upload(ctx, req.Avatar, media.KindImage)
	if err != nil {
		return nil, uploadError("avatar", err)
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		PasswordHash:   string(hash),
		AvatarURL:      avatar.URL,
		AvatarPublicID: avatar.PublicID,
	}

	if req.CoverImage != nil {
		cover, err := s.storage.Upload(ctx, req.CoverImage, media.KindImage)
		if err != nil {
			return nil, uploadError("cover image", err)
		}
		user.CoverImageURL = &cover.URL
		user.CoverImagePublicID = &cover.PublicID
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("username or email is already in use")
		}
		return nil, NewInternalError("failed to create user", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return user, nil
}

// Login verifies the credential and issues a fresh token pair, replacing
// any previously active session.
func (s *userService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Username == "" && req.Email == "" {
		return nil, NewValidationError("username or email is required", nil)
	}

	user, err := s.users.GetByUsernameOrEmail(
		ctx,
		strings.ToLower(req.Username),
		strings.ToLower(req.Email),
	)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewUnauthorizedError("invalid credentials")
		}
		return nil, NewInternalError("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = &pair.RefreshToken

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return &AuthResult{User: user, Tokens: pair}, nil
}

// Logout revokes the stored refresh token.
func (s *userService) Logout(ctx context.Context, userID int64) error {
	return s.tokens.Revoke(ctx, userID)
}

// RefreshSession rotates the token pair; see TokenService.Refresh for the
// single-session equality check.
func (s *userService) RefreshSession(ctx context.Context, presented string) (*AuthResult, error) {
	if strings.TrimSpace(presented) == "" {
		return nil, NewUnauthorizedError("refresh token is required")
	}
	pair, userID, err := s.tokens.Refresh(ctx, presented)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, NewInternalError("failed to load user", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	user.FullName = req.FullName
	user.Email = req.Email

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("email is already in use")
		}
		return nil, NewInternalError("failed to update profile", err)
	}
	return user, nil
}

// UpdateAvatar uploads the replacement first, then swaps the reference and
// deletes the old asset. A failed cleanup only logs: the record already
// points at the new file.
func (s *userService) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	return s.updateImage(ctx, userID, file,
		func(u *models.User) (string, bool) { return u.AvatarPublicID, true },
		s.users.UpdateAvatar,
		func(u *models.User, url, publicID string) {
			u.AvatarURL = url
			u.AvatarPublicID = publicID
		},
	)
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*models.User, error) {
	return s.updateImage(ctx, userID, file,
		func(u *models.User) (string, bool) {
			if u.CoverImagePublicID == nil {
				return "", false
			}
			return *u.CoverImagePublicID, true
		},
		s.users.UpdateCoverImage,
		func(u *models.User, url, publicID string) {
			u.CoverImageURL = &url
			u.CoverImagePublicID = &publicID
		},
	)
}

func (s *userService) updateImage(
	ctx context.Context,
	userID int64,
	file *multipart.FileHeader,
	oldID func(*models.User) (string, bool),
	persist func(context.Context, int64, string, string) error,
	apply func(*models.User, string, string),
) (*models.User, error) {
	if file == nil {
		return nil, NewValidationError("image file is required", nil)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.storage.Upload(ctx, file, media.KindImage)
	if err != nil {
		return nil, uploadError("image", err)
	}

	if err := persist(ctx, userID, uploaded.URL, uploaded.PublicID); err != nil {
		return nil, NewInternalError("failed to update image", err)
	}

	if old, ok := oldID(user); ok && old != "" {
		if err := s.storage.Delete(ctx, old, media.KindImage); err != nil {
			s.logger.Warn("Failed to delete replaced image, asset orphaned",
				zap.Int64("user_id", userID),
				zap.String("public_id", old),
				zap.Error(err),
			)
		}
	}

	apply(user, uploaded.URL, uploaded.PublicID)
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	user, err := s.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return NewUnauthorizedError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return NewInternalError("failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, req.UserID, string(hash)); err != nil {
		return NewInternalError("failed to update password", err)
	}

	s.logger.Info("Password changed", zap.Int64("user_id", req.UserID))
	return nil
}

func (s *userService) GetChannelProfile(ctx context.Context, username string, viewerID *int64) (*models.ChannelProfile, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, NewValidationError("username is required", nil)
	}

	profile, err := s.users.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("channel not found")
		}
		return nil, NewInternalError("failed to load channel profile", err)
	}
	return profile, nil
}

func (s *userService) GetWatchHistory(ctx context.Context, userID int64, page, pageSize int) (*models.PaginatedResponse[*models.WatchHistoryEntry], error) {
	entries, total, err := s.users.GetWatchHistory(ctx, userID, page, pageSize)
	if err != nil {
		return nil, NewInternalError("failed to load watch history", err)
	}
	return &models.PaginatedResponse[*models.WatchHistoryEntry]{
		Data:       entries,
		Pagination: models.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *userService) RecordWatch(ctx context.Context, userID, videoID int64) error {
	if err := s.users.AddWatchHistory(ctx, userID, videoID); err != nil {
		return NewInternalError("failed to record watch history", err)
	}
	return nil
}

// uploadError maps media validation failures to 400 and provider failures
// to 500.
func uploadError(what string, err error) *ServiceError {
	switch {
	case errors.Is(err, media.ErrFileTooLarge),
		errors.Is(err, media.ErrInvalidContentType),
		errors.Is(err, media.ErrInvalidExtension):
		return NewValidationError("invalid "+what+" file", err)
	default:
		return NewInternalError("failed to upload "+what, err)
	}
}
