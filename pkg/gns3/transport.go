package gns3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/sony/gobreaker"
)

// Transport performs a single logical HTTP call against the GNS3 server.
// Implementations own retries, timeouts and TLS; callers above this layer
// never retry.
type Transport interface {
	Call(ctx context.Context, method, url string, body io.Reader) (*Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the response body into v. An empty body is not an error.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ContentTyper may be implemented by a request body to override the
// default "application/json" content type.
type ContentTyper interface {
	ContentType() string
}

// Sizer may be implemented by a request body whose length is known but
// hidden from net/http behind a wrapper type.
type Sizer interface {
	Size() int64
}

// idempotent reports whether a request with method can be sent again after
// the server may have acted on it.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// HTTPTransport is the default Transport. It retries network errors and 5xx
// responses of idempotent methods with exponential backoff and, when enabled, trips a circuit
// breaker after consecutive failures.
type HTTPTransport struct {
	client     *http.Client
	user       string
	password   string
	retries    int
	retryDelay time.Duration
	breaker    *gobreaker.CircuitBreaker
	logger     hclog.Logger
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport from cfg. The config is expected to
// have been validated.
func NewHTTPTransport(cfg *Config, logger hclog.Logger) *HTTPTransport {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	t := &HTTPTransport{
		client:     cfg.NewHTTPClient(),
		user:       cfg.User,
		password:   cfg.Password,
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
		logger:     logger.Named("transport"),
	}

	if cfg.BreakerFailures > 0 {
		threshold := cfg.BreakerFailures
		t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        cfg.URL,
			MaxRequests: 1,
			Timeout:     cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: func(err error) bool {
				// Client errors mean the server is healthy.
				var te *TransportError
				if errors.As(err, &te) && te.StatusCode >= 400 && te.StatusCode < 500 {
					return true
				}
				return err == nil
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				t.logger.Warn("circuit breaker state changed",
					"server", name, "from", from.String(), "to", to.String())
			},
		})
	}

	return t
}

// Call implements Transport.
func (t *HTTPTransport) Call(ctx context.Context, method, url string, body io.Reader) (*Response, error) {
	if t.breaker == nil {
		return t.call(ctx, method, url, body)
	}

	out, err := t.breaker.Execute(func() (interface{}, error) {
		return t.call(ctx, method, url, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &TransportError{Method: method, URL: url, Err: err}
		}
		return nil, err
	}
	return out.(*Response), nil
}

// call executes the request with retry logic.
func (t *HTTPTransport) call(ctx context.Context, method, url string, body io.Reader) (*Response, error) {
	seeker, replayable := body.(io.Seeker)
	maxRetries := t.retries
	if body != nil && !replayable {
		// A consumed stream cannot be sent twice.
		maxRetries = 0
	}
	if !idempotent(method) {
		// A create the server committed before failing would be repeated.
		maxRetries = 0
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = t.retryDelay
	policy.MaxElapsedTime = 0

	requestID := uuid.NewString()
	attempt := 0

	var resp *Response
	op := func() error {
		attempt++
		if attempt > 1 && seeker != nil {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return backoff.Permanent(&TransportError{
					Method: method, URL: url, Err: fmt.Errorf("failed to rewind request body: %w", err),
				})
			}
		}

		r, err := t.do(ctx, method, url, body, requestID)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}

	notify := func(err error, wait time.Duration) {
		t.logger.Debug("retrying request",
			"method", method, "url", url, "request_id", requestID,
			"attempt", attempt, "wait", wait, "error", err)
	}

	err := backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(maxRetries)), ctx),
		notify)
	if err != nil {
		var te *TransportError
		if !errors.As(err, &te) {
			// Context cancelled while waiting between attempts.
			err = &TransportError{Method: method, URL: url, Err: err}
		}
		return nil, err
	}
	return resp, nil
}

// do performs one HTTP round trip. Errors worth retrying are returned as is;
// anything else is wrapped with backoff.Permanent.
func (t *HTTPTransport) do(ctx context.Context, method, url string, body io.Reader, requestID string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, backoff.Permanent(&TransportError{
			Method: method, URL: url, Err: fmt.Errorf("failed to create request: %w", err),
		})
	}

	if sz, ok := body.(Sizer); ok && sz.Size() > 0 {
		req.ContentLength = sz.Size()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		contentType := "application/json"
		if ct, ok := body.(ContentTyper); ok {
			contentType = ct.ContentType()
		}
		req.Header.Set("Content-Type", contentType)
	}
	if t.user != "" {
		req.SetBasicAuth(t.user, t.password)
	}

	start := time.Now()
	httpResp, err := t.client.Do(req)
	if err != nil {
		te := &TransportError{Method: method, URL: url, Err: err}
		if ctx.Err() != nil {
			return nil, backoff.Permanent(te)
		}
		return nil, te
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{
			Method: method, URL: url, Err: fmt.Errorf("failed to read response: %w", err),
		}
	}

	t.logger.Debug("http call",
		"method", method, "url", url, "status", httpResp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		te := &TransportError{
			Method:     method,
			URL:        url,
			StatusCode: httpResp.StatusCode,
			Body:       apiMessage(respBody),
		}
		if httpResp.StatusCode >= 500 {
			return nil, te
		}
		return nil, backoff.Permanent(te)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// apiMessage extracts the "message" field GNS3 puts in error bodies, falling
// back to the raw body.
func apiMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return string(body)
}
