package gns3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Connector is the handle every entity keeps to reach its server.
type Connector struct {
	baseURL   string
	transport Transport
	logger    hclog.Logger
}

// ConnectorOption customizes a Connector.
type ConnectorOption func(*Connector)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) ConnectorOption {
	return func(c *Connector) {
		c.transport = t
	}
}

// WithLogger sets the logger. Defaults to a null logger.
func WithLogger(l hclog.Logger) ConnectorOption {
	return func(c *Connector) {
		c.logger = l
	}
}

// NewConnector validates cfg and returns a Connector for it.
func NewConnector(cfg *Config, opts ...ConnectorOption) (*Connector, error) {
	if cfg == nil {
		return nil, &Error{Op: "NewConnector", Err: ErrInvalidArgument, Msg: "config is required"}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid connector config: %w", err)
	}

	c := &Connector{
		baseURL: cfg.BaseURL(),
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("gns3")
	if c.transport == nil {
		c.transport = NewHTTPTransport(cfg, c.logger)
	}

	return c, nil
}

// BaseURL returns the versioned API root, e.g. "http://localhost:3080/v2".
func (c *Connector) BaseURL() string {
	return c.baseURL
}

// Host returns the hostname of the server.
func (c *Connector) Host() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Logger returns the connector's logger.
func (c *Connector) Logger() hclog.Logger {
	return c.logger
}

// endpoint joins path segments onto the base URL, escaping each one.
func (c *Connector) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

// Call issues a JSON request. body is marshalled when non-nil and the
// response is decoded into out when non-nil.
func (c *Connector) Call(ctx context.Context, method, endpoint string, body, out any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	resp, err := c.transport.Call(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	if out != nil {
		if err := resp.JSON(out); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func (c *Connector) get(ctx context.Context, endpoint string, out any) error {
	_, err := c.Call(ctx, http.MethodGet, endpoint, nil, out)
	return err
}

// uploadBody marks a request body as binary of a known length.
type uploadBody struct {
	io.Reader
	size int64
}

func (uploadBody) ContentType() string {
	return "application/octet-stream"
}

func (b uploadBody) Size() int64 {
	return b.size
}

// Upload streams size bytes of r as the raw request body.
func (c *Connector) Upload(ctx context.Context, endpoint string, r io.Reader, size int64) error {
	_, err := c.transport.Call(ctx, http.MethodPost, endpoint, uploadBody{Reader: r, size: size})
	return err
}
