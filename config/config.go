// Package config loads newsctl settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/vitalvas/newsapi/newsapi"
)

var (
	ErrMissingAPIID     = errors.New("config: api id is required")
	ErrMissingAPISecret = errors.New("config: api secret is required")
	ErrInvalidPort      = errors.New("config: port out of range")
	ErrInvalidLogFormat = errors.New("config: unknown log format")
)

// Config is the file and environment configuration. Environment variables
// take precedence over the file.
type Config struct {
	APIID              string        `yaml:"api_id" env:"NEWSAPI_API_ID" env-description:"API key identifier"`
	APISecret          string        `yaml:"api_secret" env:"NEWSAPI_API_SECRET" env-description:"Base64-encoded API secret"`
	Host               string        `yaml:"host" env:"NEWSAPI_HOST" env-default:"news-api.apple.com" env-description:"API host without scheme or port"`
	Port               int           `yaml:"port" env:"NEWSAPI_PORT" env-description:"HTTPS port, 0 for the default"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"NEWSAPI_INSECURE_SKIP_VERIFY" env-description:"Skip TLS certificate verification"`
	Timeout            time.Duration `yaml:"timeout" env:"NEWSAPI_TIMEOUT" env-default:"30s" env-description:"Per-request timeout"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"NEWSAPI_LOG_LEVEL" env-default:"info" env-description:"Log level"`
	Format string `yaml:"format" env:"NEWSAPI_LOG_FORMAT" env-default:"console" env-description:"Log format: console or json"`
}

// Load reads the file at path, when path is not empty, and then the
// environment. It does not validate credentials: offline commands run
// without them.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}

		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read environment: %w", err)
	}

	return cfg, nil
}

// Describe returns the environment variables Config reads, for help
// output.
func Describe() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}

	return text
}

// Validate checks the settings needed to talk to the API.
func (c Config) Validate() error {
	if c.APIID == "" {
		return ErrMissingAPIID
	}

	if c.APISecret == "" {
		return ErrMissingAPISecret
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}

	return nil
}

// Client converts c into client settings.
func (c Config) Client() newsapi.Config {
	return newsapi.Config{
		APIID:              c.APIID,
		APISecret:          c.APISecret,
		Host:               c.Host,
		Port:               c.Port,
		InsecureSkipVerify: c.InsecureSkipVerify,
		Timeout:            c.Timeout,
	}
}
