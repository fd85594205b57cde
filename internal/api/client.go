package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Unauthorized reports whether err is a 401 from the backend.
func Unauthorized(err error) bool {
	se, ok := err.(*StatusError)
	return ok && se.Code == http.StatusUnauthorized
}

// Client talks to the backend REST API. The cookie jar carries the refresh
// token cookie across refresh-token and logout calls.
type Client struct {
	base *url.URL
	http *http.Client
}

func NewClient(baseURL string, tlsConf *tls.Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http or https, got %q", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConf != nil {
		transport.TLSClientConfig = tlsConf
	}
	return &Client{
		base: base,
		http: &http.Client{
			Jar:       jar,
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}, nil
}

// WebsocketURL derives the event channel endpoint from the REST base.
func (c *Client) WebsocketURL() string {
	ws := *c.base
	if ws.Scheme == "https" {
		ws.Scheme = "wss"
	} else {
		ws.Scheme = "ws"
	}
	ws.Path = strings.TrimRight(ws.Path, "/") + "/ws"
	return ws.String()
}

func (c *Client) Login(ctx context.Context, email string, password string) (Credentials, error) {
	var creds Credentials
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &creds)
	return creds, err
}

func (c *Client) Register(ctx context.Context, name string, email string, profilePic string, password string) (Credentials, error) {
	var creds Credentials
	body := map[string]string{
		"name":       name,
		"email":      email,
		"profilePic": profilePic,
		"password":   password,
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body, &creds)
	return creds, err
}

// RefreshToken exchanges the refresh cookie for a new credential. The caller
// treats failure as session-fatal.
func (c *Client) RefreshToken(ctx context.Context) (Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh-token", "", nil, &creds)
	return creds, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", "", nil, nil)
}

func (c *Client) Conversations(ctx context.Context, token string) ([]Conversation, error) {
	var out []Conversation
	err := c.do(ctx, http.MethodGet, "/api/conversations", token, nil, &out)
	return out, err
}

// Messages returns the full history for a conversation, chronological.
func (c *Client) Messages(ctx context.Context, token string, conversationID string) ([]Message, error) {
	var out []Message
	path := "/api/conversations/" + url.PathEscape(conversationID) + "/messages"
	err := c.do(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *Client) SendMessage(ctx context.Context, token string, content string, receiverID string) (Message, error) {
	var msg Message
	body := map[string]string{"content": content, "receiverId": receiverID}
	err := c.do(ctx, http.MethodPost, "/api/chat", token, body, &msg)
	return msg, err
}

func (c *Client) SearchUsers(ctx context.Context, token string, query string) ([]User, error) {
	var raw []searchResult
	path := "/api/user/search?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	users := make([]User, 0, len(raw))
	for _, r := range raw {
		users = append(users, r.Item)
	}
	return users, nil
}

func (c *Client) do(ctx context.Context, method string, path string, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: req.URL.Path, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
