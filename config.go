package artily

import (
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// Config carries the host-facing client settings.
type Config struct {
	// Endpoint is the marketplace GraphQL API URL.
	Endpoint string `yaml:"endpoint"`
	// StoragePath is where the persisted client state database lives.
	// Empty means in-memory only.
	StoragePath string `yaml:"storage_path"`
	// Locale is the preferred display locale, persisted alongside the token.
	Locale string `yaml:"locale"`
	// RequestTimeout bounds each API request.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// Debug turns on request/response payload dumps.
	Debug bool `yaml:"debug"`
}

// UnmarshalYAML decodes the file over whatever values the target already
// holds, so absent keys keep their defaults, and accepts durations in the
// "10s" / "1m30s" form.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Endpoint       *string `yaml:"endpoint"`
		StoragePath    *string `yaml:"storage_path"`
		Locale         *string `yaml:"locale"`
		RequestTimeout *string `yaml:"request_timeout"`
		Debug          *bool   `yaml:"debug"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Endpoint != nil {
		c.Endpoint = *raw.Endpoint
	}
	if raw.StoragePath != nil {
		c.StoragePath = *raw.StoragePath
	}
	if raw.Locale != nil {
		c.Locale = *raw.Locale
	}
	if raw.RequestTimeout != nil {
		timeout, err := time.ParseDuration(*raw.RequestTimeout)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryBadInput, "request_timeout is not a valid duration")
		}
		c.RequestTimeout = timeout
	}
	if raw.Debug != nil {
		c.Debug = *raw.Debug
	}

	return nil
}

// DefaultConfig returns the settings used when the host provides nothing.
func DefaultConfig() Config {
	return Config{
		Endpoint:       "http://localhost:3007/graphql",
		Locale:         "en",
		RequestTimeout: 30 * time.Second,
	}
}

// Validate checks the config before any component is wired from it.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Endpoint,
			validation.Required,
			is.URL,
		),
		validation.Field(
			&c.Locale,
			validation.Length(2, 10),
		),
	)
}

// LoadConfig reads a YAML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryOperation, "unable to read config file").
			WithMetadata(map[string]any{"path": path})
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryBadInput, "config file is not valid YAML").
			WithMetadata(map[string]any{"path": path})
	}

	if err := cfg.Validate(); err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryValidation, "config is not valid")
	}

	return cfg, nil
}
