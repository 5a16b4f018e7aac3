package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(a *Authenticator, req *http.Request) (Identity, int) {
	var got Identity
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return got, rec.Code
}

func TestHeaderIdentity(t *testing.T) {
	a := NewAuthenticator("", []string{"Admin@Hotels.com"}, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "/bookings/user", nil)
	req.Header.Set(HeaderUserID, "u1")
	req.Header.Set(HeaderUserEmail, "guest@example.com")
	id, code := serve(a, req)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, Identity{UserID: "u1", Email: "guest@example.com", Role: RoleUser}, id)

	req = httptest.NewRequest(http.MethodGet, "/admin/hotels", nil)
	req.Header.Set(HeaderUserID, "u2")
	req.Header.Set(HeaderUserEmail, "admin@hotels.com")
	id, _ = serve(a, req)
	assert.True(t, id.IsAdmin(), "listed admin emails are promoted")

	id, _ = serve(a, httptest.NewRequest(http.MethodGet, "/search", nil))
	assert.False(t, id.Authenticated())
	assert.False(t, id.IsAdmin())
}

func TestBearerToken(t *testing.T) {
	const secret = "test-secret"
	a := NewAuthenticator(secret, nil, logger.Discard())
	verifier := NewTokenVerifier(secret)

	token, err := verifier.Issue(Identity{UserID: "u9", Email: "ops@example.com", Role: "admin"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/hotels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(HeaderUserID, "spoofed")
	id, code := serve(a, req)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, "u9", id.UserID, "token claims override gateway headers")
	assert.True(t, id.IsAdmin())

	expired, err := verifier.Issue(Identity{UserID: "u9"}, -time.Minute)
	require.NoError(t, err)
	other, err := NewTokenVerifier("another-secret").Issue(Identity{UserID: "u9"}, time.Hour)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + other,
		"garbage":      "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/bookings/user", nil)
			req.Header.Set("Authorization", header)
			_, code := serve(a, req)
			assert.Equal(t, http.StatusUnauthorized, code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	router := httprouter.New()
	router.GET("/admin/hotels", RequireAdmin(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}))
	h := NewAuthenticator("", nil, logger.Discard()).Middleware(router)

	tests := []struct {
		name   string
		userID string
		role   string
		want   int
	}{
		{"anonymous", "", "", http.StatusUnauthorized},
		{"user", "u1", "USER", http.StatusForbidden},
		{"admin", "u1", "admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/hotels", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			req.Header.Set(HeaderUserRole, tt.role)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
