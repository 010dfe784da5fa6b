package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tiendastsgt/agencia/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client is the shared HTTP client for outbound social platform API calls.
// Every call carries a finite timeout so one slow platform cannot delay the
// consolidated response indefinitely. No retries: a failed call is reported
// once and the caller degrades to fallback data.
type Client struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.PlatformAPI.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

// APIError is a non-2xx response from a platform API. The adapters convert it
// into a typed result; it never crosses the adapter boundary as an error.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform api returned status %d: %s", e.StatusCode, string(e.Body))
}

// GetJSON issues a single GET and decodes a 2xx JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Logger.Warn("platform api request failed",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
		return &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
