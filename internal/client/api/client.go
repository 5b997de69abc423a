// Package api is a thin JSON client for the microblog HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mbelov/microblog/internal/common"
	"github.com/mbelov/microblog/internal/server/models"
)

// Client talks to one microblog server. It remembers the access token
// obtained by Login and sends it on every subsequent request. A Client
// is not safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the access token used for authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken drops the stored token. Subsequent protected calls will be
// rejected by the server.
func (c *Client) ClearToken() { c.token = "" }

// Authenticated reports whether a token is installed.
func (c *Client) Authenticated() bool { return c.token != "" }

// do performs one JSON round trip. A non-2xx response is translated
// into a sentinel from the common taxonomy so callers can branch with
// errors.Is; the server's message is carried alongside.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = common.ErrorInvalidCredentials
	case http.StatusForbidden:
		sentinel = common.ErrorForbidden
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusConflict:
		sentinel = common.ErrorAlreadyExists
	default:
		sentinel = common.ErrorInternal
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/users/register", map[string]string{
		"email": email, "password": password, "name": name,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, "/users/login", map[string]string{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		return err
	}
	c.token = out.AccessToken
	return nil
}

// Identity mirrors the claims the server reports for the current token.
type Identity struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, patch map[string]string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

func (c *Client) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodPost, "/posts", map[string]string{
		"title": title, "content": content,
	}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) ListPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, patch map[string]string) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/posts/%d", id), patch, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}
