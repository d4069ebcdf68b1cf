// Package config holds the application configuration for the pagemark CLI.
// Values are resolved from flags, environment variables (PAGEMARK_*), and an
// optional .pagemark.yaml config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pagemark/pagemark/pkg/convert"
)

// Config is the resolved CLI configuration.
type Config struct {
	// Conversion options
	PreserveLinks   bool `mapstructure:"links"`
	PreserveImages  bool `mapstructure:"images"`
	IncludeMetadata bool `mapstructure:"metadata"`
	MaxDepth        int  `mapstructure:"max_depth" validate:"min=1"`

	// Fetch settings
	FetchMode string        `mapstructure:"fetch_mode" validate:"oneof=static dynamic"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"min=0"`
	UserAgent string        `mapstructure:"user_agent"`

	// Output settings
	Format string `mapstructure:"format" validate:"oneof=markdown json jsonl yaml"`

	// Logging
	Debug bool `mapstructure:"debug"`
	Quiet bool `mapstructure:"quiet"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxDepth:  convert.DefaultMaxDepth,
		FetchMode: "static",
		Timeout:   30 * time.Second,
		Format:    "markdown",
	}
}

var validate = validator.New()

// Load resolves the configuration from viper's merged sources and
// validates it.
func Load() (*Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("invalid config: field %s failed %s validation", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// ConvertConfig maps the CLI configuration onto the core converter options.
func (c *Config) ConvertConfig() *convert.Config {
	return &convert.Config{
		PreserveLinks:   c.PreserveLinks,
		PreserveImages:  c.PreserveImages,
		IncludeMetadata: c.IncludeMetadata,
		MaxDepth:        c.MaxDepth,
	}
}
