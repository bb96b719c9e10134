package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runCORS(t *testing.T, origins []string, origin, method string, preflight bool) *httptest.ResponseRecorder {
	t.Helper()
	handler := CORS(origins)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/chat/enviar", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowedOrigin(t *testing.T) {
	rec := runCORS(t, []string{"http://localhost:4200"}, "http://localhost:4200", http.MethodGet, false)
	assert.Equal(t, "http://localhost:4200", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSDisallowedOrigin(t *testing.T) {
	rec := runCORS(t, []string{"http://localhost:4200"}, "http://evil.example", http.MethodGet, false)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	rec := runCORS(t, []string{"*"}, "https://app.example.com", http.MethodGet, false)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	rec := runCORS(t, []string{"http://localhost:4200"}, "http://localhost:4200", http.MethodOptions, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
