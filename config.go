package gcapi

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Config holds SDK configuration. It is copied into the Client at
// construction and never mutated afterwards.
type Config struct {
	Host       string
	Protocol   string
	APIKey     string
	APIVersion string

	// Timeout is forwarded to the transport with every request. Zero leaves
	// the request without a timeout hint.
	Timeout time.Duration

	// Transport performs the network I/O. Nil selects the resty based HTTP
	// transport built from the fields below.
	Transport Transport

	HTTPClient      *http.Client
	RateLimit       float64
	RateBurst       int
	UserAgent       string
	RequestIDHeader string

	// ExtraHeaders are added on the wire by the default transport. They never
	// replace the Authorization, Accept or Content-Type headers.
	ExtraHeaders http.Header
	ProxyURL     *url.URL

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration

	Debug  bool
	Logger *zerolog.Logger
	// RedactHeaders are masked in debug dumps. Defaults to Authorization.
	RedactHeaders []string

	BeforeRequest []RequestHook
	AfterResponse []ResponseHook
}

// RequestHook allows callers to inspect or mutate requests before they are sent.
type RequestHook func(*http.Request)

// ResponseHook allows callers to inspect responses (raw bytes included).
type ResponseHook func(*http.Response, []byte)

const (
	defaultHost            = "api.g-ca.fr"
	defaultProtocol        = "https"
	defaultAPIVersion      = "1"
	defaultRequestIDHeader = "X-Request-ID"
	defaultUserAgent       = "gcapi-go/1.0.0"
	defaultMaxIdleConns    = 100
	defaultMaxIdlePerHost  = 10
	defaultIdleConnTimeout = 90 * time.Second
)

// envConfig mirrors the GCAPI_* environment variables.
type envConfig struct {
	APIKey     string        `envconfig:"API_KEY"`
	Host       string        `envconfig:"HOST" default:"api.g-ca.fr"`
	Protocol   string        `envconfig:"PROTOCOL" default:"https"`
	APIVersion string        `envconfig:"API_VERSION" default:"1"`
	Timeout    time.Duration `envconfig:"TIMEOUT"`
	Debug      bool          `envconfig:"DEBUG"`
	RateLimit  float64       `envconfig:"RATE_LIMIT"`
	RateBurst  int           `envconfig:"RATE_BURST"`
	Proxy      string        `envconfig:"PROXY"`
}

// LoadConfig builds a Config from environment variables:
//
//	GCAPI_API_KEY, GCAPI_HOST, GCAPI_PROTOCOL, GCAPI_API_VERSION,
//	GCAPI_TIMEOUT, GCAPI_DEBUG, GCAPI_RATE_LIMIT, GCAPI_RATE_BURST,
//	GCAPI_PROXY.
//
// GCAPI_TIMEOUT takes a Go duration such as "1500ms". The returned Config is
// validated the same way NewClient validates it.
func LoadConfig() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv reads the GCAPI_* variables and applies defaults without
// validating, so callers can layer further overrides before NewClient.
func ConfigFromEnv() (Config, error) {
	var env envConfig
	if err := envconfig.Process("GCAPI", &env); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	cfg := Config{
		Host:       env.Host,
		Protocol:   env.Protocol,
		APIKey:     env.APIKey,
		APIVersion: env.APIVersion,
		Timeout:    env.Timeout,
		Debug:      env.Debug,
		RateLimit:  env.RateLimit,
		RateBurst:  env.RateBurst,
	}
	if env.Proxy != "" {
		parsed, err := url.Parse(env.Proxy)
		if err != nil {
			return Config{}, fmt.Errorf("parse GCAPI_PROXY: %w", err)
		}
		cfg.ProxyURL = parsed
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	c.Host = firstNonEmpty(c.Host, defaultHost)
	c.Protocol = firstNonEmpty(c.Protocol, defaultProtocol)
	c.APIVersion = firstNonEmpty(c.APIVersion, defaultAPIVersion)
	c.UserAgent = firstNonEmpty(c.UserAgent, defaultUserAgent)
	c.RequestIDHeader = firstNonEmpty(c.RequestIDHeader, defaultRequestIDHeader)
	if c.RateLimit > 0 && c.RateBurst == 0 {
		c.RateBurst = 1
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdlePerHost
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = defaultIdleConnTimeout
	}
	if c.RedactHeaders == nil {
		c.RedactHeaders = []string{"Authorization"}
	}
	return c
}

func (c Config) validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "Timeout", Message: "timeout must be non-negative"}
	}
	if c.RateLimit < 0 {
		return &ConfigError{Field: "RateLimit", Message: "rate limit must be >= 0"}
	}
	if c.RateBurst < 0 {
		return &ConfigError{Field: "RateBurst", Message: "rate burst must be >= 0"}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
