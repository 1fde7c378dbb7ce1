package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/paa/internal/conversation"
)

// Client talks to an Ollama server over its HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	model     string
	system    string
}

// Options configure a Client.
type Options struct {
	BaseURL      string        // host:port or URL; empty uses defaultBaseURL
	Model        string        // empty uses defaultModel
	SystemPrompt string        // prepended as a system message when non-empty
	Timeout      time.Duration // upper bound for a single HTTP exchange; zero means none
}

const (
	defaultBaseURL   = "http://127.0.0.1:11434"
	defaultModel     = "llama3.2"
	defaultUserAgent = "paa/0.1"
	maxErrorBody     = 4 << 10
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: defaultUserAgent,
		model:     model,
		system:    strings.TrimSpace(opts.SystemPrompt),
	}, nil
}

// Model returns the model name sent with every chat request.
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Generate sends the conversation to the model and returns the reply text.
func (c *Client) Generate(ctx context.Context, history []conversation.Entry) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	resp, err := c.Chat(ctx, c.messages(history))
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// Chat performs a single non-streaming /api/chat exchange.
func (c *Client) Chat(ctx context.Context, messages []Message) (*ChatResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body := ChatRequest{Model: c.model, Messages: messages, Stream: false}
	var payload ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Ping checks that the server answers /api/version.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload VersionResponse
	return c.do(ctx, http.MethodGet, "/api/version", nil, &payload)
}

func (c *Client) messages(history []conversation.Entry) []Message {
	out := make([]Message, 0, len(history)+1)
	if c.system != "" {
		out = append(out, Message{Role: "system", Content: c.system})
	}
	for _, e := range history {
		if e.Failed {
			continue
		}
		out = append(out, Message{Role: e.Sender.Role(), Content: e.Text})
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, in, dest any) error {
	var reader io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "encode request", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "decode response", Cause: err}
	}
	return nil
}

func classifyTransport(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	default:
		return &ClientError{Type: ErrTypeNotRunning, Message: "ollama is not reachable", Cause: err}
	}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func statusError(path string, resp *http.Response) error {
	msg := fmt.Sprintf("api %s returned status %d", path, resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body apiError
	if json.Unmarshal(raw, &body) == nil && strings.TrimSpace(body.Error) != "" {
		msg = strings.TrimSpace(body.Error)
	}
	if resp.StatusCode == http.StatusNotFound {
		return &ClientError{Type: ErrTypeModelNotFound, Message: msg}
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: msg}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse ollama url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
