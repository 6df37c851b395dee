// Package config loads the client configuration: a YAML file, then OPHISTORY_*
// environment overrides, then validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"operation-history/hydrate"
	"operation-history/postal"
	"operation-history/primitive"
	"operation-history/retry"
	"operation-history/soap"
	"operation-history/utils"
)

// EnvPrefix starts every environment override, e.g. OPHISTORY_RETRY_MAX_ATTEMPTS.
const EnvPrefix = "OPHISTORY_"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Retry     RetryConfig     `yaml:"retry"`
	Hydration HydrationConfig `yaml:"hydration"`
	Log       LogConfig       `yaml:"log"`
}

type ServiceConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Namespace string        `yaml:"namespace"`
	Timeout   time.Duration `yaml:"timeout"`
	Login     string        `yaml:"login"`
	Password  string        `yaml:"password"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Delay       time.Duration `yaml:"delay"`
}

type HydrationConfig struct {
	Strict bool `yaml:"strict"`
	// Categories names the allowed scalar conversions, see primitive.ParseCategories.
	Categories []string `yaml:"categories"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint:  postal.ServiceURI,
			Namespace: postal.ServiceNamespace,
			Timeout:   soap.DefaultTimeout,
		},
		Retry: RetryConfig{
			MaxAttempts: retry.DefaultMaxAttempts,
			Delay:       retry.DefaultDelay,
		},
		Hydration: HydrationConfig{
			Categories: []string{"all"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the file at path (skipped when path is empty), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse overlays YAML data onto cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return nil
}

// ApplyEnv overlays OPHISTORY_<SECTION>_<KEY>=value entries of environ onto cfg.
// Keys match fields loosely, so OPHISTORY_RETRY_MAX_ATTEMPTS sets Retry.MaxAttempts.
// A comma-separated value fills a list.
func (c *Config) ApplyEnv(environ []string) error {
	sections := make(map[string]hydrate.Tree)

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		section, field, ok := strings.Cut(strings.TrimPrefix(key, EnvPrefix), "_")
		if !ok || section == "" || field == "" {
			continue
		}

		section = strings.ToLower(section)
		if sections[section] == nil {
			sections[section] = make(hydrate.Tree)
		}

		sections[section][field] = envValue(value)
	}

	var err error

	for section, tree := range sections {
		switch section {
		case "service":
			err = overlay(&c.Service, tree)
		case "retry":
			err = overlay(&c.Retry, tree)
		case "hydration":
			err = overlay(&c.Hydration, tree)
		case "log":
			err = overlay(&c.Log, tree)
		default:
			continue
		}

		if err != nil {
			return fmt.Errorf("environment overrides of %s: %w", section, err)
		}
	}

	return nil
}

func envValue(value string) any {
	if !strings.Contains(value, ",") {
		return value
	}

	var items []any
	for _, item := range strings.Split(value, ",") {
		items = append(items, strings.TrimSpace(item))
	}

	return items
}

// overlay hydrates tree onto *dst, keeping the fields tree does not mention.
func overlay[T any](dst *T, tree hydrate.Tree) error {
	out, err := hydrate.Hydrate(*dst, tree, hydrate.Strict())
	if err != nil {
		return err
	}

	*dst = out

	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Service.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: service.endpoint %q is not an absolute URL", ErrInvalid, c.Service.Endpoint))
	}

	if c.Service.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: service.timeout must be positive", ErrInvalid))
	}

	if !utils.IsInRange(1, c.Retry.MaxAttempts, 100) {
		errs = append(errs, fmt.Errorf("%w: retry.max_attempts %d is out of [1, 100]", ErrInvalid, c.Retry.MaxAttempts))
	}

	if !utils.IsInRange(0, c.Retry.Delay, time.Hour) {
		errs = append(errs, fmt.Errorf("%w: retry.delay %v is out of [0, 1h]", ErrInvalid, c.Retry.Delay))
	}

	if _, err := c.Categories(); err != nil {
		errs = append(errs, fmt.Errorf("%w: hydration.categories: %w", ErrInvalid, err))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", ErrInvalid, err))
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("%w: log.format %q is neither json nor console", ErrInvalid, c.Log.Format))
	}

	return errors.Join(errs...)
}

// Categories combines Hydration.Categories.
func (c *Config) Categories() (primitive.CategoryEnum, error) {
	return primitive.ParseCategories(c.Hydration.Categories...)
}

// HydrationOptions turns the hydration section into hydrate options.
func (c *Config) HydrationOptions() []hydrate.Option {
	opts := []hydrate.Option{hydrate.WithStrict(c.Hydration.Strict)}

	if categories, err := c.Categories(); err == nil {
		opts = append(opts, hydrate.WithCategories(categories))
	}

	return opts
}
