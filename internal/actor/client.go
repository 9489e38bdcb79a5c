package actor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Code)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Code, e.Message)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the backend's JSON API.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(doer httpDoer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// NewClient returns a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

type createMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Ping checks that the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *Client) CreatePost(ctx context.Context, title, content, excerpt, category string) (uint64, error) {
	var resp struct {
		ID uint64 `json:"id"`
	}
	body := createPostRequest{Title: title, Content: content, Excerpt: excerpt, Category: category}
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) DeletePost(ctx context.Context, id uint64) (bool, error) {
	var resp struct {
		Deleted bool `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, postPath(id), nil, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

func (c *Client) GetAllPosts(ctx context.Context) ([]BlogPost, error) {
	var resp struct {
		Posts []BlogPost `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Posts == nil {
		resp.Posts = []BlogPost{}
	}
	return resp.Posts, nil
}

func (c *Client) GetPostByID(ctx context.Context, id uint64) (*BlogPost, error) {
	var resp struct {
		Post *BlogPost `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, postPath(id), nil, &resp); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return resp.Post, nil
}

func (c *Client) SubmitContactMessage(ctx context.Context, name, email, message string) error {
	body := createMessageRequest{Name: name, Email: email, Message: message}
	return c.do(ctx, http.MethodPost, "/api/messages", body, nil)
}

func (c *Client) GetAllMessages(ctx context.Context) ([]ContactMessage, error) {
	var resp struct {
		Messages []ContactMessage `json:"messages"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		resp.Messages = []ContactMessage{}
	}
	return resp.Messages, nil
}

func postPath(id uint64) string {
	return "/api/posts/" + url.PathEscape(strconv.FormatUint(id, 10))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &payload)
		return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(payload.Error)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
