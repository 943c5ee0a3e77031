package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserID(r.Context())))
	})
}

func TestMiddlewareAnonymousPassThrough(t *testing.T) {
	m := NewMiddleware(testSecret, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)

	m.Handler(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMiddlewareValidToken(t *testing.T) {
	m := NewMiddleware(testSecret, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "uid-1", time.Now().Add(time.Hour)))

	m.Handler(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", rec.Body.String())
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	m := NewMiddleware(testSecret, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "uid-1", time.Now().Add(-time.Hour)))

	m.Handler(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Phiên đăng nhập không hợp lệ hoặc đã hết hạn")
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	m := NewMiddleware(testSecret, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "uid-1", time.Now().Add(time.Hour)))

	m.Handler(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	m := NewMiddleware(testSecret, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	req.Header.Set("Authorization", "token-without-scheme")

	m.Handler(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header không hợp lệ")
}

func TestMiddlewareRejectsEmptySubject(t *testing.T) {
	m := NewMiddleware(testSecret, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "", time.Now().Add(time.Hour)))

	m.Handler(echoUserID()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardIsUserAnonymous(t *testing.T) {
	g := NewGuard(nil)

	env := g.IsUser(context.Background())
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnauthorized, env.Status)
}
