package users

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(32<<20))
	return r
}

func TestFormFileHeaderReadsParsedForm(t *testing.T) {
	r := multipartRequest(t, "avatar", "avatar.png")

	header := formFileHeader(r, "avatar")
	require.NotNil(t, header)
	assert.Equal(t, "avatar.png", header.Filename)
}

func TestFormFileHeaderMissingField(t *testing.T) {
	r := multipartRequest(t, "avatar", "avatar.png")
	assert.Nil(t, formFileHeader(r, "coverImage"))

	// Request without a parsed form at all.
	bare := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Nil(t, formFileHeader(bare, "avatar"))
}
