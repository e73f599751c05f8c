package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrSessionExpired reports that the refresh attempt itself was rejected;
// the session has been cleared and the caller must re-authenticate.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response decoded from the uniform error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Client calls the API with the stored session. A 401 on an authenticated
// request triggers exactly one refresh-and-retry; a second 401 clears the
// session.
type Client struct {
	baseURL string
	session *SessionStore
	http    *http.Client
}

// New builds a client against baseURL using the given session store.
func New(baseURL string, session *SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Session exposes the underlying session store.
func (c *Client) Session() *SessionStore {
	return c.session
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

// Do issues the request and decodes the envelope's data into out (when out
// is non-nil). Authenticated requests carry the bearer token and get one
// refresh-and-retry on 401.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body, c.session.AccessToken())
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session.RefreshToken() != "" {
		drain(resp)
		token, refreshErr := c.refresh(ctx)
		if refreshErr != nil {
			_ = c.session.ClearAuth()
			return ErrSessionExpired
		}
		if err := c.session.SetAccessToken(token); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body, token)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			_ = c.session.ClearAuth()
			return ErrSessionExpired
		}
	}

	return decode(resp, out)
}

// Login authenticates and installs the session.
func (c *Client) Login(ctx context.Context, email, password string) (*SessionUser, error) {
	var data struct {
		User         SessionUser `json:"user"`
		Token        string      `json:"token"`
		RefreshToken string      `json:"refreshToken"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, &data); err != nil {
		return nil, err
	}
	if err := c.session.SetAuth(data.User, data.Token, data.RefreshToken); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Logout notifies the server and clears the session regardless of the
// server's answer.
func (c *Client) Logout(ctx context.Context) error {
	_ = c.Do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	return c.session.ClearAuth()
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, http.MethodPost, "/api/v1/auth/refresh-token",
		map[string]string{"refreshToken": c.session.RefreshToken()}, "")
	if err != nil {
		return "", err
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := decode(resp, &data); err != nil {
		return "", err
	}
	return data.Token, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
