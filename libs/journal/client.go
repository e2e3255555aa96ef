// Package journal is the client access layer for the trip-journal service.
// It turns trip, event and media operations into authenticated HTTP calls,
// decodes the responses and reports failures as one of four error kinds:
// *InvalidInputError, *NetworkError, *ServerError and *DecodingError.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is where a locally running journal server listens.
const DefaultBaseURL = "http://localhost:8000"

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Client performs journal operations against one base URL. It owns the
// Session; its methods are safe for concurrent use.
type Client struct {
	baseURL string
	client  HTTPDoer
	session *Session
	logger  *zap.Logger
}

// NewClient builds a client. A nil httpClient gets a 30s-timeout
// http.Client and a nil logger discards output.
func NewClient(baseURL string, httpClient HTTPDoer, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = NewDefaultHTTPClient(30 * time.Second)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		session: NewSession(),
		logger:  logger,
	}
}

// Session exposes the client's token holder.
func (c *Client) Session() *Session {
	return c.session
}

// IsAuthenticated reports whether the client holds a token.
func (c *Client) IsAuthenticated() bool {
	return c.session.IsAuthenticated()
}

// Subscribe follows the authentication signal; see Session.Subscribe.
func (c *Client) Subscribe() *Subscription {
	return c.session.Subscribe()
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) headers() map[string]string {
	return defaultHeaders(c.session.accessToken())
}

// send runs one round trip and returns the body of a successful response.
func (c *Client) send(ctx context.Context, method Method, path string, headers map[string]string, body []byte) ([]byte, error) {
	endpoint := c.buildURL(path)
	req, err := BuildRequest(ctx, endpoint, method, headers, body)
	if err != nil {
		c.logger.Warn("journal request not built", zap.String("url", endpoint), zap.Error(err))
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("journal request failed", zap.String("method", string(method)), zap.String("path", path), zap.Error(err))
		return nil, networkError(err)
	}
	if resp == nil {
		return nil, networkError(errors.New("no response"))
	}
	var data []byte
	if resp.Body != nil {
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			c.logger.Warn("journal response unreadable", zap.String("path", path), zap.Error(err))
			return nil, networkError(err)
		}
	}

	c.logger.Debug("journal request",
		zap.String("method", string(method)),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	out, err := InterpretResponse(resp.StatusCode, data)
	if err != nil {
		c.logger.Warn("journal request rejected",
			zap.String("method", string(method)),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}
	return out, nil
}

// sendJSON encodes payload (when non-nil) and sends it with the default headers.
func (c *Client) sendJSON(ctx context.Context, method Method, path, entity string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, decodingError(entity, err)
		}
		body = encoded
	}
	return c.send(ctx, method, path, c.headers(), body)
}

// remove issues a DELETE that accepts any response type.
func (c *Client) remove(ctx context.Context, path string) error {
	headers := c.headers()
	headers[HeaderAccept] = AcceptAny
	_, err := c.send(ctx, MethodDelete, path, headers, nil)
	return err
}

func decode[T any](entity string, data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, decodingError(entity, err)
	}
	return out, nil
}
