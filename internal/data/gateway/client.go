package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fieldpro/pkg/utils"

	"go.uber.org/zap"
)

// Client is the shared HTTP client for the marketplace backend. All durable
// state lives behind it; the engine keeps only snapshots of what it returns.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(cfg utils.BackendConfig, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("gateway", "client")),
	}
}

// backendEnvelope is the common response wrapper. Some endpoints return the
// resource at the top level instead; callers go through unwrapData so they
// never see the difference.
type backendEnvelope struct {
	Status  *bool           `json:"status,omitempty"`
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do performs one round trip and returns the raw payload with any envelope
// stripped. Backend rejections come back with the backend's message verbatim
// so the professional sees the real reason.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Backend request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("path", path),
		)
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := backendMessage(raw)
		c.log.Warn("Backend rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("message", msg),
		)
		if msg == "" {
			return nil, fmt.Errorf("backend returned %d for %s %s", resp.StatusCode, method, path)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	return unwrapData(raw), nil
}

// backendMessage digs a human-readable message out of an error payload.
func backendMessage(raw []byte) string {
	var env backendEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}
