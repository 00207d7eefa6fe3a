// Package config loads msgform settings from defaults, an optional YAML file,
// a .env file and MSGFORM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read when no explicit path is given. A missing default
	// file is not an error.
	DefaultFile = "msgform.yaml"
	// DefaultEnvFile is the dotenv file consulted before the environment.
	DefaultEnvFile = ".env"

	EnvPrefix = "MSGFORM_"
)

// Renderer names accepted by the CLI.
var Renderers = []string{"text", "json", "html"}

// Config is the full runtime configuration.
type Config struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	Renderer          string        `yaml:"renderer"`
	Listen            string        `yaml:"listen"`
	Contract          string        `yaml:"contract"`
	ValidateResponses bool          `yaml:"validate_responses"`
	CORSOrigins       []string      `yaml:"cors_origins"`
	ThemeVariant      string        `yaml:"theme_variant"`
	Verbose           bool          `yaml:"verbose"`
	Log               Log           `yaml:"log"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:  "http://127.0.0.1:8000",
		Timeout:  15 * time.Second,
		Renderer: "text",
		Listen:   "127.0.0.1:8080",
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

type loadOptions struct {
	envFile string
	lookup  func(string) (string, bool)
}

type Option func(*loadOptions)

// WithEnvFile overrides the dotenv file. Empty disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv, mainly for tests.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if fn != nil {
			o.lookup = fn
		}
	}
}

// Load builds the configuration. An explicit path must exist; the default
// file is optional. Process environment wins over values from the dotenv
// file, which is never written back to the environment.
func Load(path string, options ...Option) (Config, error) {
	opts := loadOptions{
		envFile: DefaultEnvFile,
		lookup:  os.LookupEnv,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFile
	}
	if err := readFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if opts.envFile != "" {
		values, err := godotenv.Read(opts.envFile)
		switch {
		case err == nil:
			dotenv = values
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("config: read %s: %w", opts.envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if value, ok := opts.lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func readFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if value, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	str("BASE_URL", &cfg.BaseURL)
	str("RENDERER", &cfg.Renderer)
	str("LISTEN", &cfg.Listen)
	str("CONTRACT", &cfg.Contract)
	str("THEME_VARIANT", &cfg.ThemeVariant)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	if value, ok := lookup(EnvPrefix + "TIMEOUT"); ok && value != "" {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %sTIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Timeout = d
	}
	for name, dst := range map[string]*bool{
		"VALIDATE_RESPONSES": &cfg.ValidateResponses,
		"VERBOSE":            &cfg.Verbose,
	} {
		value, ok := lookup(EnvPrefix + name)
		if !ok || value == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}
	if value, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok && value != "" {
		cfg.CORSOrigins = SplitList(value)
	}
	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, entry := range strings.Split(value, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if !contains(Renderers, c.Renderer) {
		return fmt.Errorf("config: unknown renderer %q (want one of %s)", c.Renderer, strings.Join(Renderers, ", "))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
