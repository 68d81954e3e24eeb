// Package apiclient talks to the TrackIT REST backend on behalf of a
// console session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/events"
)

const maxBodySize = 10 << 20

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	publisher  events.Publisher
	logger     *slog.Logger
}

// NewClient builds the shared backend client. Every failed call is
// published as an api.failed event on publisher, which may be nil.
func NewClient(config Config, publisher events.Publisher, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		publisher: publisher,
		logger:    logger,
	}
}

type quietKey struct{}

// Quiet marks ctx so failures are returned without an api.failed event.
// Callers that batch several calls use it to report once.
func Quiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

func isQuiet(ctx context.Context) bool {
	q, _ := ctx.Value(quietKey{}).(bool)
	return q
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends one request and decodes the response into out. Errors are always
// *errors.AppError, classified by HTTP status only.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resource := resourceOf(path)
	started := time.Now()

	status, err := c.do(ctx, method, path, query, body, out)
	observe(resource, method, status, started)
	if err == nil {
		c.logger.Debug("backend call",
			"method", method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(started).Milliseconds())
		return nil
	}

	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.NewInternalError("backend call failed", err)
	}
	c.logger.Warn("backend call failed",
		"method", method,
		"path", path,
		"status", status,
		"code", appErr.Code,
		"error", appErr.Error())

	if c.publisher != nil && !isQuiet(ctx) {
		event := events.NewAPIFailedEvent(
			errors.SessionIDFromContext(ctx),
			errors.LocaleFromContext(ctx),
			resource, method, appErr)
		if perr := c.publisher.PublishSync(ctx, event); perr != nil {
			c.logger.Error("failed to publish api failure", "error", perr)
		}
	}
	return appErr
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, errors.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, errors.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := errors.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if lang := errors.LocaleFromContext(ctx); lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, errors.NewNetworkError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, errors.FromStatus(resp.StatusCode, upstreamMessage(raw))
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := decode(raw, out); err != nil {
		return resp.StatusCode, errors.NewInternalError("invalid backend response", err)
	}
	return resp.StatusCode, nil
}

// decode accepts a bare value or one wrapped as {"data": ...}.
func decode(raw []byte, out interface{}) error {
	var envelope map[string]json.RawMessage
	if json.Unmarshal(raw, &envelope) == nil {
		if data, ok := envelope["data"]; ok {
			raw = data
		}
	}
	return json.Unmarshal(raw, out)
}

// upstreamMessage digs the human readable message out of an error body.
func upstreamMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		if raw[0] == '<' || len(raw) > 200 {
			return ""
		}
		return string(raw)
	}
	for _, key := range []string{"message", "error", "detail"} {
		switch v := body[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]interface{}:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return ""
}

// resourceOf returns the collection a path belongs to, e.g. "materiels".
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}

// JoinPath builds "/collection/escaped/parts".
func JoinPath(collection string, parts ...string) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(strings.Trim(collection, "/"))
	for _, p := range parts {
		b.WriteString("/")
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}
