package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment     string
	LogLevel        zerolog.Level
	HTTPAddr        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	// CatalogSource is "builtin", a file path, s3://bucket/key or dynamodb://table/id.
	CatalogSource string
}

type Option func(*Config)

func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel parses level, falling back to info when it is not a zerolog level.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil || parsedLevel == zerolog.NoLevel {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

func WithHTTPAddr(addr string) Option {
	return func(c *Config) {
		c.HTTPAddr = addr
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ShutdownTimeout = timeout
	}
}

// WithAllowedOrigins takes a comma separated origin list. "*" allows any origin.
func WithAllowedOrigins(origins string) Option {
	return func(c *Config) {
		c.AllowedOrigins = splitList(origins)
	}
}

func WithCatalogSource(source string) Option {
	return func(c *Config) {
		c.CatalogSource = source
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:     "production",
		LogLevel:        zerolog.InfoLevel,
		HTTPAddr:        ":8080",
		ShutdownTimeout: 10 * time.Second,
		AllowedOrigins:  []string{"*"},
		CatalogSource:   "builtin",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// IsLocal reports whether the process runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "development"
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.IsLocal() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPAddr(getEnvOrDefault("HTTP_ADDR", ":8080")),
		WithShutdownTimeout(getDurationEnvOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)),
		WithAllowedOrigins(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
		WithCatalogSource(getEnvOrDefault("CATALOG_SOURCE", "builtin")),
	)
}

// LoadDotEnv reads the given files (".env" when none are named) into the environment
// without overriding variables that are already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return err
	}
	log.Debug().Strs("files", present).Msg("Loaded environment files")
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration in environment variable, using default")
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
