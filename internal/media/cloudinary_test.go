package media

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"vidhub/internal/config"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(&config.CloudinaryConfig{
		CloudName: "test-cloud",
		APIKey:    "key",
		APISecret: "secret",
	}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

// fileHeader builds a real multipart.FileHeader by round-tripping a form.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(32<<20))
	return r.MultipartForm.File["file"][0]
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&config.CloudinaryConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestValidateAcceptsPNG(t *testing.T) {
	svc := newTestService(t)
	err := svc.validate(fileHeader(t, "avatar.png", pngMagic), KindImage)
	assert.NoError(t, err)
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	svc := newTestService(t)
	svc.config.MaxImageSize = 4

	err := svc.validate(fileHeader(t, "avatar.png", pngMagic), KindImage)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateRejectsWrongContentType(t *testing.T) {
	svc := newTestService(t)

	err := svc.validate(fileHeader(t, "avatar.png", []byte("plain text, not an image")), KindImage)
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestValidateRejectsWrongExtension(t *testing.T) {
	svc := newTestService(t)

	err := svc.validate(fileHeader(t, "avatar.txt", pngMagic), KindImage)
	assert.ErrorIs(t, err, ErrInvalidExtension)
}

func TestValidateVideoOctetStreamFallsBackToExtension(t *testing.T) {
	svc := newTestService(t)
	// Random bytes sniff as application/octet-stream, so the extension
	// decides.
	blob := []byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe, 0xfd}

	assert.NoError(t, svc.validate(fileHeader(t, "clip.mp4", blob), KindVideo))
	assert.ErrorIs(t, svc.validate(fileHeader(t, "clip.avi", blob), KindVideo), ErrInvalidExtension)
}

func TestAssetDurationFromRawResponse(t *testing.T) {
	body := map[string]interface{}{"duration": 42.5}
	result := &uploader.UploadResult{Response: &body}
	assert.Equal(t, 42.5, assetDuration(result))
}

func TestAssetDurationMissingIsZero(t *testing.T) {
	// Image uploads carry no duration key.
	body := map[string]interface{}{"format": "png"}
	assert.Zero(t, assetDuration(&uploader.UploadResult{Response: &body}))
	assert.Zero(t, assetDuration(&uploader.UploadResult{}))
}

func TestDeleteRejectsEmptyPublicID(t *testing.T) {
	svc := newTestService(t)
	err := svc.Delete(context.Background(), "", KindImage)
	assert.ErrorIs(t, err, ErrDeleteFailed)
}
