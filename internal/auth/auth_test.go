package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	log := hclog.NewNullLogger()

	var gotID uint
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = GetUserID(r.Context())
	})
	handler := Middleware(secret, log, next)

	t.Run("valid token passes the user ID through", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v2/documents", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, secret, "42"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.True(t, called)
		assert.Equal(t, uint(42), gotID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v2/documents", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with the wrong secret is rejected", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v2/documents", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other"), "42"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-numeric subject is rejected", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/api/v2/documents", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, secret, "sari"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
