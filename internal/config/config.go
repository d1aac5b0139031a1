// Package config loads the server configuration: built-in defaults, then an
// optional YAML file, then environment variables (a .env file in the working
// directory is read first).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/employee-directory/internal/validation"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DefaultPath    = "config.yaml"
	DefaultAppName = "Employee Directory"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Query   QueryConfig   `yaml:"query"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

// APIConfig points at the remote employees API. An empty BaseURL is valid:
// the directory then serves the bundled sample records.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Timeout string `yaml:"timeout"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	LoginPath       string `yaml:"login_path"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	// Level is a zerolog level name; empty picks info in production and
	// debug otherwise.
	Level string `yaml:"level"`
}

type QueryConfig struct {
	StaleTime string `yaml:"stale_time"`
	GCTime    string `yaml:"gc_time"`
	// Retry is the number of retries after a failed fetch; nil picks 2 in
	// production and 0 otherwise.
	Retry *int `yaml:"retry"`
}

func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: DefaultAppName,
			Env:  EnvDevelopment,
		},
		API: APIConfig{
			Timeout: "10s",
		},
		Server: ServerConfig{
			Port:            "8080",
			LoginPath:       "/login",
			ShutdownTimeout: "10s",
		},
		Storage: StorageConfig{
			DBPath: "directory.db",
		},
		Query: QueryConfig{
			StaleTime: "5m",
			GCTime:    "10m",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
// Environment variables override both.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("API_BASE_URL"); ok {
		c.API.BaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		c.App.Name = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOGIN_PATH"); v != "" {
		c.Server.LoginPath = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) Production() bool { return c.App.Env == EnvProduction }

// Development is also true for an empty env.
func (c *Config) Development() bool { return c.App.Env == EnvDevelopment || c.App.Env == "" }

// APIConfigured reports whether a remote employees API is set.
func (c *Config) APIConfigured() bool { return c.API.BaseURL != "" }

func (c *Config) Addr() string { return ":" + c.Server.Port }

func (c *Config) APITimeout() time.Duration {
	return parseDuration(c.API.Timeout, 10*time.Second)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func (c *Config) StaleTime() time.Duration {
	return parseDuration(c.Query.StaleTime, 5*time.Minute)
}

func (c *Config) GCTime() time.Duration {
	return parseDuration(c.Query.GCTime, 10*time.Minute)
}

func (c *Config) QueryRetry() int {
	if c.Query.Retry != nil {
		return *c.Query.Retry
	}
	if c.Production() {
		return 2
	}
	return 0
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("app.env must be one of development, production, test (got %q)", c.App.Env))
	}
	for _, key := range validation.RequiredFields(map[string]any{
		"app.name":        c.App.Name,
		"server.port":     c.Server.Port,
		"storage.db_path": c.Storage.DBPath,
	}, []string{"app.name", "server.port", "storage.db_path"}) {
		errs = append(errs, fmt.Errorf("%s is required", key))
	}

	if port, err := strconv.Atoi(c.Server.Port); c.Server.Port != "" && (err != nil || port < 1 || port > 65535) {
		errs = append(errs, fmt.Errorf("server.port must be 1-65535 (got %q)", c.Server.Port))
	}
	if !strings.HasPrefix(c.Server.LoginPath, "/") {
		errs = append(errs, fmt.Errorf("server.login_path must start with / (got %q)", c.Server.LoginPath))
	}

	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("api.base_url must be an absolute http(s) URL (got %q)", c.API.BaseURL))
		}
	}

	for name, v := range map[string]string{
		"api.timeout":             c.API.Timeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"query.stale_time":        c.Query.StaleTime,
		"query.gc_time":           c.Query.GCTime,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration (got %q)", name, v))
		}
	}
	if c.Query.Retry != nil && *c.Query.Retry < 0 {
		errs = append(errs, fmt.Errorf("query.retry must not be negative (got %d)", *c.Query.Retry))
	}

	return errors.Join(errs...)
}
