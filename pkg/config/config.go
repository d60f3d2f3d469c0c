// Package config loads adapter settings from the environment, with CLI
// flags layered on top by the command.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Transport names accepted by the server.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config holds everything the adapter needs: one controller endpoint,
// the MCP transport binding, and the optional observability listener.
type Config struct {
	// ControllerURL is the base URL of the POX web service; all RPC
	// calls go to <ControllerURL>/OF/.
	ControllerURL string `env:"POX_URL" envDefault:"http://127.0.0.1:8000"`

	// Transport selects the MCP binding: stdio or sse.
	Transport string `env:"POX_MCP_TRANSPORT" envDefault:"sse"`

	// Listen is the SSE bind address; unused for stdio.
	Listen string `env:"POX_MCP_LISTEN" envDefault:"127.0.0.1:3000"`

	// MetricsListen enables the health/metrics HTTP server when set.
	MetricsListen string `env:"POX_MCP_METRICS_LISTEN"`

	// RequestTimeout bounds each controller round-trip.
	RequestTimeout time.Duration `env:"POX_RPC_TIMEOUT" envDefault:"15s"`

	Debug bool `env:"POX_MCP_DEBUG"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ControllerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid controller URL %q", c.ControllerURL)
	}

	switch c.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("unknown transport %q (expected %q or %q)", c.Transport, TransportStdio, TransportSSE)
	}

	if c.Transport == TransportSSE && c.Listen == "" {
		return fmt.Errorf("sse transport requires a listen address")
	}
	return nil
}
