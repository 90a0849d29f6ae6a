// internal/services/comment_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"vidhub/internal/models"
	"vidhub/internal/repositories"

	"go.uber.org/zap"
)

// CommentService manages comments on videos.
type CommentService interface {
	Create(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID int64, page, pageSize int) (*models.PaginatedResponse[*models.Comment], error)
	Update(ctx context.Context, req *UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, commentID, userID int64) error
}

type commentService struct {
	comments repositories.CommentRepository
	videos   repositories.VideoRepository
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments repositories.CommentRepository,
	videos repositories.VideoRepository,
	logger *zap.Logger,
) CommentService {
	return &commentService{comments: comments, videos: videos, logger: logger}
}

func (s *commentService) Create(ctx context.Context, req *CreateCommentRequest) (*models.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.videos.GetByID(ctx, req.VideoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("video not found")
		}
		return nil, NewInternalError("failed to load video", err)
	}

	comment := &models.Comment{
		VideoID: req.VideoID,
		OwnerID: req.UserID,
		Content: req.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, NewInternalError("failed to create comment", err)
	}
	return comment, nil
}

func (s *commentService) ListByVideo(ctx context.Context, videoID int64, page, pageSize int) (*models.PaginatedResponse[*models.Comment], error) {
	comments, total, err := s.comments.ListByVideo(ctx, videoID, page, pageSize)
	if err != nil {
		return nil, NewInternalError("failed to list comments", err)
	}
	return &models.PaginatedResponse[*models.Comment]{
		Data:       comments,
		Pagination: models.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *commentService) Update(ctx context.Context, req *UpdateCommentRequest) (*models.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	comment, err := s.ownedComment(ctx, req.CommentID, req.UserID)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, NewInternalError("failed to update comment", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, commentID, userID int64) error {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return NewInternalError("failed to delete comment", err)
	}
	return nil
}

func (s *commentService) ownedComment(ctx context.Context, commentID, userID int64) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundError("comment not found")
		}
		return nil, NewInternalError("failed to load comment", err)
	}
	if comment.OwnerID != userID {
		return nil, NewForbiddenError("you do not own this comment")
	}
	return comment, nil
}
