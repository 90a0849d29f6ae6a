package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vidhub/internal/config"

	"github.com/stretchr/testify/assert"
)

func corsHandler(cfg *config.CORSConfig) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return CORS(cfg)(next)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := corsHandler(&config.CORSConfig{
		AllowedOrigins:   []string{"https://app.example.com"},
		AllowCredentials: true,
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/videos", nil)
	r.Header.Set("Origin", "https://app.example.com")
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSRejectsPreflightFromUnknownOrigin(t *testing.T) {
	h := corsHandler(&config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/videos", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPassesThroughUnknownOriginRequests(t *testing.T) {
	h := corsHandler(&config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	h.ServeHTTP(rec, r)

	// Non-preflight requests still reach the handler; the browser enforces
	// the missing grant headers.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardOrigin(t *testing.T) {
	h := corsHandler(&config.CORSConfig{AllowedOrigins: []string{"*"}})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	r.Header.Set("Origin", "https://anywhere.example.com")
	h.ServeHTTP(rec, r)

	assert.Equal(t, "https://anywhere.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
