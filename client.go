package gcapi

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Client is the main entrypoint. It carries only the configuration given to
// NewClient and is safe for concurrent use.
type Client struct {
	cfg       Config
	auth      Auth
	base      baseOptions
	transport Transport
	logger    zerolog.Logger

	// owned is set when the client built its own HTTP transport.
	owned *restyTransport
}

// NewClient validates cfg, applies defaults and builds a Client. An empty
// APIKey fails with ErrMissingAPIKey. No network I/O happens here.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	logger := zerolog.Nop()
	switch {
	case cfg.Logger != nil:
		logger = *cfg.Logger
	case cfg.Debug:
		logger = log.Logger.Level(zerolog.DebugLevel)
	}
	logger = logger.With().Str("component", "gcapi").Logger()

	c := &Client{
		cfg:    cfg,
		auth:   newAuth(cfg),
		base:   baseOptions{sendImmediately: true, timeout: cfg.Timeout},
		logger: logger,
	}

	if cfg.Transport != nil {
		c.transport = cfg.Transport
	} else {
		c.owned = newRestyTransport(cfg, logger)
		c.transport = c.owned
	}
	return c, nil
}

// NewClientFromEnv builds a Client from the GCAPI_* environment variables.
func NewClientFromEnv() (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg)
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Close releases idle HTTP connections held by the default transport.
func (c *Client) Close() {
	if c == nil || c.owned == nil {
		return
	}
	c.owned.close()
}
