// Package auth validates Supabase bearer tokens and gates routes by role.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
	"github.com/tranduykhanh2004/storely/internal/response"
	"github.com/tranduykhanh2004/storely/internal/supabase"
)

type contextKey string

const (
	userIDKey contextKey = "auth_user_id"
	emailKey  contextKey = "auth_email"
	tokenKey  contextKey = "auth_token"
)

// Claims are the Supabase JWT claims this API cares about.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Middleware validates an optional Authorization bearer token. Requests
// without a header pass through anonymously; requests with a broken or
// expired token are rejected, they are never downgraded to anonymous.
type Middleware struct {
	jwtSecret string
	client    *supabase.Client
}

// NewMiddleware creates the token-validating middleware. The Supabase
// client is the REST fallback used when no JWT secret is configured.
func NewMiddleware(jwtSecret string, client *supabase.Client) *Middleware {
	return &Middleware{jwtSecret: jwtSecret, client: client}
}

// Handler returns the middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized("Authorization header không hợp lệ").Write(w)
			return
		}
		token := parts[1]

		userID, email, err := m.validateToken(r.Context(), token)
		if err != nil {
			logrus.WithError(err).Debug("token validation failed")
			response.Unauthorized("Phiên đăng nhập không hợp lệ hoặc đã hết hạn").Write(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, emailKey, email)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateToken prefers local HS256 verification against the Supabase JWT
// secret and falls back to the auth REST API.
func (m *Middleware) validateToken(ctx context.Context, token string) (userID, email string, err error) {
	if m.jwtSecret != "" {
		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(m.jwtSecret), nil
		})
		if err != nil {
			return "", "", fmt.Errorf("jwt parse: %w", err)
		}
		if !parsed.Valid || claims.Subject == "" {
			return "", "", errors.New("jwt invalid")
		}
		return claims.Subject, claims.Email, nil
	}

	if m.client == nil {
		return "", "", errors.New("no token validator configured")
	}
	user, err := m.client.GetUser(ctx, token)
	if err != nil {
		return "", "", err
	}
	return user.ID, user.Email, nil
}

// UserID returns the authenticated Supabase user id, "" when anonymous.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// Email returns the authenticated email, "" when anonymous.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// Token returns the raw bearer token, "" when anonymous.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithUserID injects an authenticated user id; used by in-process callers
// and tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Guard answers role questions against the profile table. Both checks
// return the standard envelope so route handlers can propagate failures
// verbatim.
type Guard struct {
	db *gorm.DB
}

// NewGuard creates a guard over the profile table.
func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// IsUser succeeds when the caller is authenticated; data carries the
// caller's profile.
func (g *Guard) IsUser(ctx context.Context) *response.Envelope {
	userID := UserID(ctx)
	if userID == "" {
		return response.Unauthorized("")
	}

	var profile models.Profile
	err := g.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.Unauthorized("Tài khoản không tồn tại")
	}
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("load profile")
		return response.Internal()
	}

	return response.Ok(&profile, "")
}

// IsAdmin succeeds when the caller's role is admin.
func (g *Guard) IsAdmin(ctx context.Context) *response.Envelope {
	env := g.IsUser(ctx)
	if !env.Success {
		return env
	}

	profile := env.Data.(*models.Profile)
	if !profile.IsAdmin() {
		return response.Forbidden("")
	}
	return env
}
