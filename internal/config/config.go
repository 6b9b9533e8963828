package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"

	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

// Environment variables read by the CLI.
const (
	EnvConfig   = "GNS3_CONFIG"
	EnvURL      = "GNS3_URL"
	EnvUser     = "GNS3_USER"
	EnvPassword = "GNS3_PASSWORD"
	EnvServer   = "GNS3_SERVER"
)

// Config is the gns3ctl configuration file.
//
// Example:
//
//	default_server = "lab"
//	log_level      = "info"
//
//	server "lab" {
//	  url        = "https://gns3.lab.local:3080"
//	  user       = "admin"
//	  password   = env.GNS3_PASSWORD
//	  tls_verify = false
//	  timeout    = "10s"
//	}
type Config struct {
	DefaultServer string    `hcl:"default_server,optional"`
	LogLevel      string    `hcl:"log_level,optional"`
	Servers       []*Server `hcl:"server,block"`
}

// Server is one GNS3 server entry.
type Server struct {
	Name            string  `hcl:"name,label"`
	URL             string  `hcl:"url"`
	User            string  `hcl:"user,optional"`
	Password        string  `hcl:"password,optional"`
	TLSVerify       *bool   `hcl:"tls_verify,optional"`
	APIVersion      int     `hcl:"api_version,optional"`
	Retries         *int    `hcl:"retries,optional"`
	RetryDelay      string  `hcl:"retry_delay,optional"`
	Timeout         string  `hcl:"timeout,optional"`
	Proxy           string  `hcl:"proxy,optional"`
	BreakerFailures *uint32 `hcl:"breaker_failures,optional"`
}

// DefaultPath returns the config file used when none is given:
// $GNS3_CONFIG, else <user config dir>/gns3ctl/config.hcl.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gns3ctl", "config.hcl")
}

// evalContext exposes environment variables to the config as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// LoadFile parses the HCL config file at path.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(path, evalContext(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Servers))
	for _, s := range cfg.Servers {
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate server block %q", s.Name)
		}
		seen[s.Name] = true
	}
	return &cfg, nil
}

// Server returns the named server entry. An empty name selects
// default_server, or the only server when there is just one.
func (c *Config) Server(name string) (*Server, error) {
	if name == "" {
		name = c.DefaultServer
	}
	if name == "" {
		if len(c.Servers) == 1 {
			return c.Servers[0], nil
		}
		return nil, fmt.Errorf("no server selected and no default_server set")
	}
	for _, s := range c.Servers {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("server %q not found in configuration", name)
}

// GNS3Config converts the entry into a library config.
func (s *Server) GNS3Config() (*gns3.Config, error) {
	cfg := gns3.DefaultConfig()
	cfg.URL = s.URL
	cfg.User = s.User
	cfg.Password = s.Password
	cfg.ProxyURL = s.Proxy
	if s.TLSVerify != nil {
		cfg.TLSVerify = s.TLSVerify
	}
	if s.APIVersion != 0 {
		cfg.APIVersion = s.APIVersion
	}
	if s.Retries != nil {
		cfg.Retries = *s.Retries
	}
	if s.BreakerFailures != nil {
		cfg.BreakerFailures = *s.BreakerFailures
	}

	var err error
	if cfg.Timeout, err = duration("timeout", s.Timeout, cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = duration("retry_delay", s.RetryDelay, cfg.RetryDelay); err != nil {
		return nil, err
	}
	return cfg, nil
}

func duration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// Resolve builds the library config for serverName from the config file at
// path, then applies GNS3_URL, GNS3_USER and GNS3_PASSWORD. A missing file
// is tolerated when GNS3_URL is set and path was not given explicitly.
func Resolve(path, serverName string) (*gns3.Config, string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if serverName == "" {
		serverName = os.Getenv(EnvServer)
	}

	logLevel := ""
	server := &Server{}
	fileCfg, err := LoadFile(path)
	switch {
	case err == nil:
		logLevel = fileCfg.LogLevel
		if server, err = fileCfg.Server(serverName); err != nil {
			if explicit || os.Getenv(EnvURL) == "" {
				return nil, "", err
			}
			server = &Server{}
		}
	case explicit:
		return nil, "", err
	case os.Getenv(EnvURL) == "":
		return nil, "", errors.Join(
			fmt.Errorf("no configuration: set %s or create %s", EnvURL, path), err)
	}

	cfg, err := server.GNS3Config()
	if err != nil {
		return nil, "", err
	}
	if v := os.Getenv(EnvURL); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		cfg.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Password = v
	}
	return cfg, logLevel, nil
}
