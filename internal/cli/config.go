package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	gcapi "github.com/gca-community/gcapi-go"
)

// fileConfig is the YAML configuration file layout.
type fileConfig struct {
	APIKey     string        `yaml:"api_key"`
	Host       string        `yaml:"host"`
	Protocol   string        `yaml:"protocol"`
	APIVersion string        `yaml:"api_version"`
	Timeout    time.Duration `yaml:"timeout"`
	Debug      bool          `yaml:"debug"`
	RateLimit  float64       `yaml:"rate_limit"`
	RateBurst  int           `yaml:"rate_burst"`
}

// loadFile reads and parses a YAML configuration file.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	fc := &fileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return fc, nil
}

// resolveConfig layers environment, config file and flags, in that order.
func (o *options) resolveConfig() (gcapi.Config, error) {
	cfg, err := gcapi.ConfigFromEnv()
	if err != nil {
		return gcapi.Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if o.configPath != "" {
		fc, err := loadFile(o.configPath)
		if err != nil {
			return gcapi.Config{}, err
		}
		cfg.APIKey = firstSet(fc.APIKey, cfg.APIKey)
		cfg.Host = firstSet(fc.Host, cfg.Host)
		cfg.Protocol = firstSet(fc.Protocol, cfg.Protocol)
		cfg.APIVersion = firstSet(fc.APIVersion, cfg.APIVersion)
		if fc.Timeout > 0 {
			cfg.Timeout = fc.Timeout
		}
		if fc.RateLimit > 0 {
			cfg.RateLimit = fc.RateLimit
			cfg.RateBurst = fc.RateBurst
		}
		cfg.Debug = cfg.Debug || fc.Debug
	}

	cfg.APIKey = firstSet(o.apiKey, cfg.APIKey)
	cfg.Host = firstSet(o.host, cfg.Host)
	cfg.Protocol = firstSet(o.protocol, cfg.Protocol)
	cfg.APIVersion = firstSet(o.apiVersion, cfg.APIVersion)
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	cfg.Debug = cfg.Debug || o.debug
	if cfg.Debug {
		// Debug may come from the environment or the file, not only --debug.
		logger := log.Logger.Level(zerolog.DebugLevel)
		cfg.Logger = &logger
	}
	return cfg, nil
}

func (o *options) newClient() (*gcapi.Client, error) {
	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, err
	}
	return gcapi.NewClient(cfg)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
