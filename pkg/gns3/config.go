package gns3

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config contains the settings used to reach a GNS3 server.
//
// Example:
//
//	cfg := gns3.DefaultConfig()
//	cfg.URL = "http://gns3.lab.local:3080"
//	cfg.User = "admin"
//	cfg.Password = os.Getenv("GNS3_PASSWORD")
type Config struct {
	// URL of the GNS3 server without the API version suffix.
	// Example: "http://localhost:3080"
	URL string `json:"url"`

	// User and Password enable HTTP basic authentication when User is set.
	User     string `json:"user,omitempty"`
	Password string `json:"-"`

	// TLSVerify controls TLS certificate verification.
	// Default: false, since lab servers usually run with self-signed certs.
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// APIVersion selects the REST API version prefix ("/v2").
	// Default: 2
	APIVersion int `json:"apiVersion,omitempty"`

	// Retries for failed requests. Only network errors and 5xx responses
	// are retried.
	// Default: 3
	Retries int `json:"retries,omitempty"`

	// RetryDelay is the initial delay between retries.
	// Default: 500ms
	RetryDelay time.Duration `json:"retryDelay,omitempty"`

	// Timeout for a single HTTP request.
	// Default: 5 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// ProxyURL routes requests through an HTTP proxy when set.
	ProxyURL string `json:"proxyUrl,omitempty"`

	// BreakerFailures is the number of consecutive failed calls after which
	// the circuit breaker opens. Zero disables the breaker.
	// Default: 5
	BreakerFailures uint32 `json:"breakerFailures,omitempty"`

	// BreakerTimeout is how long the breaker stays open.
	// Default: 30 seconds
	BreakerTimeout time.Duration `json:"breakerTimeout,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := false
	return &Config{
		TLSVerify:       &tlsVerify,
		APIVersion:      2,
		Retries:         3,
		RetryDelay:      500 * time.Millisecond,
		Timeout:         5 * time.Second,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// applyDefaults fills unset fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.APIVersion == 0 {
		c.APIVersion = defaults.APIVersion
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaults.RetryDelay
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.BreakerTimeout == 0 {
		c.BreakerTimeout = defaults.BreakerTimeout
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.APIVersion, validation.In(2, 3)),
		validation.Field(&c.Retries, validation.Min(0)),
		validation.Field(&c.RetryDelay, validation.Min(0)),
		validation.Field(&c.Timeout, validation.Min(0)),
		validation.Field(&c.ProxyURL, validation.By(httpURL)),
	)
	if err != nil {
		return &Error{Op: "Config.Validate", Err: ErrInvalidArgument, Msg: err.Error()}
	}
	return nil
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}

// BaseURL returns the versioned API root, e.g. "http://localhost:3080/v2".
func (c *Config) BaseURL() string {
	version := c.APIVersion
	if version == 0 {
		version = 2
	}
	return fmt.Sprintf("%s/v%d", strings.TrimRight(c.URL, "/"), version)
}

// NewHTTPClient creates a configured HTTP client for this server
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify == nil || !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if c.ProxyURL != "" {
		if proxy, err := url.Parse(c.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxy)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
