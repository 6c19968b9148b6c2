package middleware_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nexodus/nexodus-api/internal/api/middleware"
	"github.com/stretchr/testify/assert"
)

const testSecret = "proxy-shared-secret"

func gatedOK(t *testing.T) http.Handler {
	t.Helper()
	gate := middleware.NewProxyGatekeeper(testSecret)
	return gate.Validate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestProxyGatekeeper(t *testing.T) {
	tests := []struct {
		name   string
		header string
		set    bool
		status int
	}{
		{"missing header", "", false, http.StatusUnauthorized},
		{"empty header", "", true, http.StatusUnauthorized},
		{"not base64", "!!!not-base64!!!", true, http.StatusUnauthorized},
		{"wrong secret, valid base64", base64.StdEncoding.EncodeToString([]byte("wrong")), true, http.StatusUnauthorized},
		{"secret not encoded", testSecret, true, http.StatusUnauthorized},
		{"correct secret", base64.StdEncoding.EncodeToString([]byte(testSecret)), true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/chats/list", nil)
			if tt.set {
				req.Header.Set(middleware.ProxyHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			gatedOK(t).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

// The liveness route is mounted outside the gated group, so it answers
// without the proxy header while every other route rejects.
func TestProxyGatekeeper_LivenessBypass(t *testing.T) {
	gate := middleware.NewProxyGatekeeper(testSecret)

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Group(func(r chi.Router) {
		r.Use(gate.Validate)
		r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "liveness must bypass the gate")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "gated routes reject without the header")
}
