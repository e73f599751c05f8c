package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	session, _ := newTestSession(t)
	require.NoError(t, session.Hydrate())
	require.NoError(t, session.SetAuth(
		SessionUser{ID: "u-1", Email: "ada@example.com"}, "stale-token", "refresh-token"))
	return New(serverURL, session)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClientInjectsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"ping": "pong"}})
	}))
	defer server.Close()

	c := authedClient(t, server.URL)
	var out map[string]string
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/v1/ping", nil, &out))
	assert.Equal(t, "Bearer stale-token", gotAuth)
	assert.Equal(t, "pong", out["ping"])
}

func TestClientRefreshesOnceOn401(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/auth/refresh-token":
			atomic.AddInt32(&refreshCalls, 1)
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["refreshToken"] != "refresh-token" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid token"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"token": "fresh-token"}})
		case r.Header.Get("Authorization") == "Bearer fresh-token":
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"who": "ada"}})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "token expired"})
		}
	}))
	defer server.Close()

	c := authedClient(t, server.URL)
	var out map[string]string
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/v1/users/profile", nil, &out))
	assert.Equal(t, "ada", out["who"])
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	// The refreshed token is persisted for subsequent calls.
	assert.Equal(t, "fresh-token", c.Session().AccessToken())
}

func TestClientClearsSessionWhenRefreshFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "token expired"})
	}))
	defer server.Close()

	c := authedClient(t, server.URL)
	err := c.Do(context.Background(), http.MethodGet, "/api/v1/users/profile", nil, nil)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, c.Session().IsAuthenticated())
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "Validation failed", "code": "VALIDATION_FAILED",
		})
	}))
	defer server.Close()

	session, _ := newTestSession(t)
	require.NoError(t, session.Hydrate())
	c := New(server.URL, session)

	err := c.Do(context.Background(), http.MethodPost, "/api/v1/auth/register", map[string]string{}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
	assert.Equal(t, "Validation failed", apiErr.Message)
}

func TestClientLoginInstallsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Login successful",
			"data": map[string]any{
				"user":         map[string]string{"id": "u-1", "email": "ada@example.com", "name": "Ada", "role": "user"},
				"token":        "access-token",
				"refreshToken": "refresh-token",
			},
		})
	}))
	defer server.Close()

	session, _ := newTestSession(t)
	require.NoError(t, session.Hydrate())
	c := New(server.URL, session)

	user, err := c.Login(context.Background(), "ada@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "access-token", session.AccessToken())
	assert.Equal(t, "refresh-token", session.RefreshToken())
}

func TestClientLogoutClearsSessionEvenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "boom"})
	}))
	defer server.Close()

	c := authedClient(t, server.URL)
	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Session().IsAuthenticated())
}
