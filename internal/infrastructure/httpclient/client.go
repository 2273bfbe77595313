// Package httpclient provides the retrying HTTP client shared by all
// provider back-ends. It builds on hashicorp/go-retryablehttp with capped
// exponential backoff and rotates browser User-Agent strings per request.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Retry defaults. Waits follow min(maxWait, minWait * 2^attempt * multiplier).
const (
	DefaultMaxRetries     = 3
	DefaultMinWait        = 2 * time.Second
	DefaultMaxWait        = 10 * time.Second
	DefaultTimeout        = 30 * time.Second
	DefaultWaitMultiplier = 1.0
)

// defaultUserAgents is rotated randomly across requests to spread load
// fingerprints over common browser signatures.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// retryableStatuses are the HTTP statuses worth another attempt.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Config tunes the client's retry and timeout behavior.
type Config struct {
	MaxRetries     int
	MinWait        time.Duration
	MaxWait        time.Duration
	WaitMultiplier float64
	Timeout        time.Duration
	UserAgents     []string
}

// DefaultConfig returns the standard retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     DefaultMaxRetries,
		MinWait:        DefaultMinWait,
		MaxWait:        DefaultMaxWait,
		WaitMultiplier: DefaultWaitMultiplier,
		Timeout:        DefaultTimeout,
		UserAgents:     defaultUserAgents,
	}
}

// Response is the decoded outcome of a request. Body is fully read and the
// underlying connection returned to the pool before Response is handed back.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// JSON unmarshals the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusError reports a non-2xx response that survived all retries.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client is a retrying HTTP client safe for concurrent use. The zero value
// is not usable; construct with New.
type Client struct {
	cfg Config
	log *logger.Logger

	mu     sync.Mutex
	inner  *retryablehttp.Client
	closed bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a Client. Zero-valued wait and timeout fields fall back to
// defaults; MaxRetries is taken as-is so 0 means a single attempt. Build on
// DefaultConfig for the standard retry policy.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MinWait == 0 {
		cfg.MinWait = DefaultMinWait
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = DefaultMaxWait
	}
	if cfg.WaitMultiplier == 0 {
		cfg.WaitMultiplier = DefaultWaitMultiplier
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = defaultUserAgents
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		cfg: cfg,
		log: log.WithContext("component", "httpclient"),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get issues a GET with query params and extra headers.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (*Response, error) {
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}
	return c.do(ctx, http.MethodGet, rawURL, nil, "", headers)
}

// PostJSON issues a POST with a JSON-encoded body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body any, headers map[string]string) (*Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, encoded, "application/json", headers)
}

// PostForm issues a POST with a form-encoded body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPost, rawURL, []byte(form.Encode()), "application/x-www-form-urlencoded", headers)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, contentType string, headers map[string]string) (*Response, error) {
	inner, err := c.ensureClient()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", c.pickUserAgent())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", rawURL).
		Msg("http_request")

	resp, err := inner.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", rawURL).
		Int("status_code", resp.StatusCode).
		Msg("http_response")

	out := &Response{StatusCode: resp.StatusCode, Body: data, Header: resp.Header}
	if !out.IsSuccess() {
		return out, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
			RetryAfter: parseRetryAfter(resp.Header),
		}
	}
	return out, nil
}

// ensureClient lazily constructs the retryablehttp client so a closed Client
// can be reused after Close.
func (c *Client) ensureClient() (*retryablehttp.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inner == nil || c.closed {
		inner := retryablehttp.NewClient()
		inner.RetryMax = c.cfg.MaxRetries
		inner.RetryWaitMin = c.cfg.MinWait
		inner.RetryWaitMax = c.cfg.MaxWait
		inner.HTTPClient.Timeout = c.cfg.Timeout
		inner.Logger = nil
		inner.CheckRetry = checkRetry
		inner.Backoff = c.backoff
		// Hand back the final response after exhausted retries so callers
		// get a StatusError instead of a generic giving-up error.
		inner.ErrorHandler = retryablehttp.PassthroughErrorHandler
		c.inner = inner
		c.closed = false
	}
	return c.inner, nil
}

// Close releases idle connections. The next request transparently rebuilds
// the client, and calling Close twice is a no-op.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inner != nil && !c.closed {
		c.inner.HTTPClient.CloseIdleConnections()
		c.closed = true
	}
}

func (c *Client) pickUserAgent() string {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.cfg.UserAgents[c.rng.Intn(len(c.cfg.UserAgents))]
}

// checkRetry retries network failures and the retryable status set. 4xx
// responses other than 429 fail immediately.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return true, nil
	}
	return resp != nil && retryableStatuses[resp.StatusCode], nil
}

// backoff computes min(maxWait, minWait * 2^attempt * multiplier).
func (c *Client) backoff(minWait, maxWait time.Duration, attemptNum int, _ *http.Response) time.Duration {
	wait := time.Duration(float64(minWait) * float64(int64(1)<<uint(attemptNum)) * c.cfg.WaitMultiplier)
	if wait > maxWait || wait <= 0 {
		return maxWait
	}
	return wait
}

// parseRetryAfter reads a Retry-After header in either seconds or HTTP-date
// form. Returns 0 when absent or unparseable.
func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
