// Package supabase is a thin REST client for the Supabase auth and storage
// APIs, covering exactly the operations the storefront needs.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the Supabase connection settings.
type Config struct {
	URL        string
	AnonKey    string
	ServiceKey string
}

// Client talks to the Supabase REST APIs.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

// New creates a Supabase client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("supabase service key is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Session is the token set returned by auth operations. When email
// confirmation is pending, signup returns the bare user object instead of
// a token set, so the user fields also appear at the top level.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`

	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserID returns the auth user id for either response shape.
func (s *Session) UserID() string {
	if s.User != nil && s.User.ID != "" {
		return s.User.ID
	}
	return s.ID
}

// UserEmail returns the auth user email for either response shape.
func (s *Session) UserEmail() string {
	if s.User != nil && s.User.Email != "" {
		return s.User.Email
	}
	return s.Email
}

// User is a Supabase auth user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// SignUp creates a new auth user.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.authRequest(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.authRequest(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignOut revokes the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(resp)
	}
	return nil
}

// GetUser resolves the user behind an access token via the auth REST API.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (c *Client) authRequest(ctx context.Context, path string, payload map[string]string) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.apiError(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Upload stores an object and returns its public URL. Uploads use the
// service key so bucket policies do not get in the way of the back office.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.apiError(resp)
	}

	return c.PublicURL(bucket, path), nil
}

// Delete removes objects by path.
func (c *Client) Delete(ctx context.Context, bucket string, paths []string) error {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, bucket)

	body, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(resp)
	}
	return nil
}

// PublicURL returns the public URL of an object.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, path)
}

// ObjectPath extracts the bucket-relative object path from a public URL
// produced by PublicURL. Returns ok=false for foreign URLs.
func (c *Client) ObjectPath(bucket, publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", c.baseURL, bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(publicURL, prefix)
	if path == "" {
		return "", false
	}
	return path, true
}

func (c *Client) apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 32<<10))

	var errResp struct {
		Message  string `json:"message"`
		Error    string `json:"error"`
		ErrorMsg string `json:"msg"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Message != "":
			return fmt.Errorf("supabase error %d: %s", resp.StatusCode, errResp.Message)
		case errResp.ErrorMsg != "":
			return fmt.Errorf("supabase error %d: %s", resp.StatusCode, errResp.ErrorMsg)
		case errResp.Error != "":
			return fmt.Errorf("supabase error %d: %s", resp.StatusCode, errResp.Error)
		}
	}
	return fmt.Errorf("supabase error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
