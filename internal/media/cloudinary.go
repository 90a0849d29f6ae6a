// internal/media/cloudinary.go
package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"vidhub/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Kind selects validation rules and the Cloudinary resource type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Config holds limits and timeouts for the media adapter.
type Config struct {
	MaxImageSize  int64
	MaxVideoSize  int64
	UploadTimeout time.Duration
	DeleteTimeout time.Duration
	MaxRetries    int
	Folder        string
}

// DefaultConfig provides default limit values.
func DefaultConfig() Config {
	return Config{
		MaxImageSize:  10 << 20,
		MaxVideoSize:  200 << 20,
		UploadTimeout: 2 * time.Minute,
		DeleteTimeout: 10 * time.Second,
		MaxRetries:    3,
		Folder:        "vidhub",
	}
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
var videoExtensions = []string{".mp4", ".webm", ".mov", ".mkv"}

// UploadResult contains the stored asset's remote identity. PublicID is
// persisted next to the URL so deletion never has to parse URLs.
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Size     int
	Duration float64
}

// Storage is the interface the services depend on.
type Storage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, kind Kind) (*UploadResult, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}

// Service wraps the Cloudinary client.
type Service struct {
	client *cloudinary.Cloudinary
	config Config
	logger *zap.Logger
}

var (
	ErrMissingCredentials = fmt.Errorf("cloudinary credentials are missing")
	ErrFileTooLarge       = fmt.Errorf("file size exceeds limit")
	ErrInvalidContentType = fmt.Errorf("invalid content type")
	ErrInvalidExtension   = fmt.Errorf("invalid file extension")
	ErrUploadFailed       = fmt.Errorf("failed to upload file")
	ErrDeleteFailed       = fmt.Errorf("failed to delete file")
)

// New creates the adapter from credentials.
func New(cfg *config.CloudinaryConfig, logger *zap.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	mediaCfg := DefaultConfig()
	if cfg.Folder != "" {
		mediaCfg.Folder = cfg.Folder
	}

	return &Service{client: cld, config: mediaCfg, logger: logger}, nil
}

// Upload validates the multipart file and sends it to Cloudinary, retrying
// transient failures with exponential backoff.
func (s *Service) Upload(ctx context.Context, file *multipart.FileHeader, kind Kind) (*UploadResult, error) {
	start := time.Now()

	if err := s.validate(file, kind); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open upload: %w", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(ctx, s.config.UploadTimeout)
	defer cancel()

	params := uploader.UploadParams{
		Folder:         s.config.Folder + "/" + string(kind) + "s",
		UseFilename:    ptrBool(true),
		UniqueFilename: ptrBool(true),
		ResourceType:   string(kind),
	}

	var result *uploader.UploadResult
	operation := func() error {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		var opErr error
		result, opErr = s.client.Upload.Upload(ctx, src, params)
		return opErr
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = s.config.UploadTimeout / 2
	err = backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(b, uint64(s.config.MaxRetries)),
		func(err error, d time.Duration) {
			s.logger.Warn("Upload attempt failed",
				zap.String("filename", file.Filename),
				zap.Error(err),
				zap.Duration("backoff", d),
			)
		},
	)
	if err != nil {
		s.logger.Error("All upload attempts failed",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	s.logger.Info("File uploaded",
		zap.String("filename", file.Filename),
		zap.String("public_id", result.PublicID),
		zap.Duration("took", time.Since(start)),
	)

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Size:     result.Bytes,
		Duration: assetDuration(result),
	}, nil
}

// assetDuration pulls the duration key out of the raw upload response body.
// The typed UploadResult does not surface it, but video uploads report it in
// the JSON the client keeps on the Response field.
func assetDuration(result *uploader.UploadResult) float64 {
	var body map[string]interface{}
	switch raw := result.Response.(type) {
	case *map[string]interface{}:
		if raw != nil {
			body = *raw
		}
	case map[string]interface{}:
		body = raw
	default:
		return 0
	}
	d, _ := body["duration"].(float64)
	return d
}

// Delete removes a stored asset by its public ID. Fails closed: any error
// from the provider is returned to the caller.
func (s *Service) Delete(ctx context.Context, publicID string, kind Kind) error {
	if publicID == "" {
		return fmt.Errorf("%w: empty public id", ErrDeleteFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.DeleteTimeout)
	defer cancel()

	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		s.logger.Error("Failed to delete file",
			zap.String("public_id", publicID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	if resp != nil && resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("%w: %s", ErrDeleteFailed, resp.Result)
	}

	s.logger.Info("File deleted", zap.String("public_id", publicID))
	return nil
}

func (s *Service) validate(file *multipart.FileHeader, kind Kind) error {
	limit := s.config.MaxImageSize
	if kind == KindVideo {
		limit = s.config.MaxVideoSize
	}
	if file.Size > limit {
		return fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, file.Size, limit)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("unable to open upload: %w", err)
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read upload: %w", err)
	}

	contentType := http.DetectContentType(buffer[:n])
	category := strings.Split(contentType, "/")[0]
	// DetectContentType cannot sniff every video container; fall back to the
	// extension check for application/octet-stream.
	if category != string(kind) && contentType != "application/octet-stream" {
		return fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := imageExtensions
	if kind == KindVideo {
		allowed = videoExtensions
	}
	if !slices.Contains(allowed, ext) {
		return fmt.Errorf("%w: %s is not a valid %s extension", ErrInvalidExtension, ext, kind)
	}
	return nil
}

func ptrBool(b bool) *bool { return &b }
