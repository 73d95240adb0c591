package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseTokenFromRequest(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "u-123",
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+tokenString)

	claims, err := ParseTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims["user_id"])
	assert.Equal(t, "user@example.com", claims["email"])
}

func TestParseTokenFromRequestMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	_, err := ParseTokenFromRequest(r)
	assert.EqualError(t, err, "missing token")
}

func TestParseTokenFromRequestWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "some-other-secret", jwt.MapClaims{
		"user_id": "u-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+tokenString)

	_, err := ParseTokenFromRequest(r)
	assert.EqualError(t, err, "invalid token")
}

func TestParseTokenFromRequestExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "u-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+tokenString)

	_, err := ParseTokenFromRequest(r)
	assert.EqualError(t, err, "invalid token")
}

func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), "user", user)
	return r.WithContext(ctx)
}

func TestProMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ProMiddleware(next)

	t.Run("pro user passes", func(t *testing.T) {
		r := withUser(httptest.NewRequest(http.MethodPost, "/api/ai/insights", nil), &models.User{ID: "u-1", IsPro: true})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("free user is rejected", func(t *testing.T) {
		r := withUser(httptest.NewRequest(http.MethodPost, "/api/ai/insights", nil), &models.User{ID: "u-2"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Pro subscription required")
	})

	t.Run("missing user is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/ai/insights", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCurrentUser(t *testing.T) {
	user := &models.User{ID: "u-1", Email: "user@example.com"}
	r := withUser(httptest.NewRequest(http.MethodGet, "/", nil), user)
	assert.Equal(t, user, CurrentUser(r))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, CurrentUser(bare))
}
