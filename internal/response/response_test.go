package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return &resp
}

func TestWriteSuccessEnvelope(t *testing.T) {
	builder := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)

	builder.WriteSuccess(rec, r, map[string]int{"id": 1}, "videos fetched successfully")

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.Success)
	assert.Equal(t, "videos fetched successfully", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestWriteCreatedEnvelope(t *testing.T) {
	builder := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/tweets", nil)

	builder.WriteCreated(rec, r, nil, "tweet created successfully")

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.Success)
}

func TestWriteErrorMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", services.NewValidationError("bad input", nil), 400, "bad input"},
		{"unauthorized", services.NewUnauthorizedError("authentication required"), 401, "authentication required"},
		{"forbidden", services.NewForbiddenError("not the owner"), 403, "not the owner"},
		{"not found", services.NewNotFoundError("video not found"), 404, "video not found"},
		{"conflict", services.NewConflictError("already in use"), 409, "already in use"},
	}

	builder := NewBuilder(zap.NewNop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			builder.WriteError(rec, r, tc.err)

			resp := decodeEnvelope(t, rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.message, resp.Message)
			assert.Nil(t, resp.Data)
			assert.Equal(t, []string{tc.message}, resp.Errors)
		})
	}
}

func TestWriteErrorExpandsValidationDetails(t *testing.T) {
	type form struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	cause := validator.New().Struct(form{Email: "not-an-email"})
	require.Error(t, cause)

	builder := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", nil)

	builder.WriteError(rec, r, services.NewValidationError("invalid request data", cause))

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, resp.Errors, 2)
	assert.Contains(t, resp.Errors[0], "Username")
	assert.Contains(t, resp.Errors[1], "Email")
}

func TestWriteSuccessOmitsErrorsField(t *testing.T) {
	builder := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	builder.WriteSuccess(rec, r, nil, "ok")

	assert.NotContains(t, rec.Body.String(), `"errors"`)
}

func TestWriteErrorMasksUnknownErrors(t *testing.T) {
	builder := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	builder.WriteError(rec, r, errors.New("pq: connection refused"))

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"capped", "page=1&limit=9999", 1, 100},
		{"garbage", "page=abc&limit=-5", 1, 10},
		{"zero page", "page=0", 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			page, pageSize := ParsePagination(r)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.pageSize, pageSize)
		})
	}
}
