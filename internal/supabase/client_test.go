package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{URL: srv.URL, AnonKey: "anon", ServiceKey: "service"})
	require.NoError(t, err)
	return client, srv
}

func TestNewRequiresURLAndServiceKey(t *testing.T) {
	_, err := New(Config{ServiceKey: "service"})
	assert.Error(t, err)

	_, err = New(Config{URL: "https://x.supabase.co"})
	assert.Error(t, err)
}

func TestSignIn(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])

		json.NewEncoder(w).Encode(Session{
			AccessToken: "token-123",
			User:        &User{ID: "uid-1", Email: "a@b.com"},
		})
	}))

	session, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", session.AccessToken)
	assert.Equal(t, "uid-1", session.User.ID)
}

func TestSignUpPendingConfirmationShape(t *testing.T) {
	// With email confirmation enabled, GoTrue answers signup with the bare
	// user object instead of a token set.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Write([]byte(`{"id":"uid-1","email":"a@b.com","confirmation_sent_at":"2026-08-30T00:00:00Z"}`))
	}))

	session, err := client.SignUp(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Nil(t, session.User)
	assert.Equal(t, "uid-1", session.UserID())
	assert.Equal(t, "a@b.com", session.UserEmail())
}

func TestSessionUserIDPrefersWrappedUser(t *testing.T) {
	s := &Session{ID: "top", User: &User{ID: "uid-1", Email: "u@b.com"}}
	assert.Equal(t, "uid-1", s.UserID())
	assert.Equal(t, "u@b.com", s.UserEmail())

	empty := &Session{}
	assert.Equal(t, "", empty.UserID())
}

func TestSignInBadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid login credentials"})
	}))

	_, err := client.SignIn(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestGetUser(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(User{ID: "uid-1", Email: "a@b.com"})
	}))

	user, err := client.GetUser(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.ID)
}

func TestUploadReturnsPublicURL(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/images/a/b.png", r.URL.Path)
		assert.Equal(t, "Bearer service", r.Header.Get("Authorization"))
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))

	url, err := client.Upload(context.Background(), "images", "a/b.png", []byte("data"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/images/a/b.png", url)
}

func TestObjectPathRoundTrip(t *testing.T) {
	client, err := New(Config{URL: "https://x.supabase.co", ServiceKey: "service"})
	require.NoError(t, err)

	url := client.PublicURL("images", "a/b.png")
	path, ok := client.ObjectPath("images", url)
	require.True(t, ok)
	assert.Equal(t, "a/b.png", path)

	_, ok = client.ObjectPath("images", "https://elsewhere.example/a/b.png")
	assert.False(t, ok)

	_, ok = client.ObjectPath("other-bucket", url)
	assert.False(t, ok)
}

func TestDeleteSendsPrefixes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/images", r.URL.Path)

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"a/b.png"}, body["prefixes"])
		w.WriteHeader(http.StatusOK)
	}))

	err := client.Delete(context.Background(), "images", []string{"a/b.png"})
	assert.NoError(t, err)
}
