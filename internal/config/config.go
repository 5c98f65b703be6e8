// Package config loads the configuration from defaults, an optional
// config.yaml, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	ProviderHeuristic = "heuristic"
	ProviderGenAI     = "genai"
	ProviderNone      = "none"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete application configuration
type Config struct {
	Server struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`

	// APIURL is the URL the API is reachable at from the outside
	APIURL string `mapstructure:"api_url"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	CORS struct {
		// Space separated
		AllowOrigins string `mapstructure:"allow_origins"`
	} `mapstructure:"cors"`

	Pprof struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"pprof"`

	Database struct {
		Driver   string `mapstructure:"driver"`
		DSN      string `mapstructure:"dsn"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Ledger struct {
		Account  string `mapstructure:"account"`
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"ledger"`

	Input struct {
		MaxLength int `mapstructure:"max_length"`
	} `mapstructure:"input"`

	Categorizer struct {
		KeywordsFile string `mapstructure:"keywords_file"`
	} `mapstructure:"categorizer"`

	Advisor struct {
		Provider      string        `mapstructure:"provider"`
		Model         string        `mapstructure:"model"`
		Timeout       time.Duration `mapstructure:"timeout"`
		MaxConcurrent int           `mapstructure:"max_concurrent"`
		APIKey        string        `mapstructure:"api_key"`
	} `mapstructure:"advisor"`

	Events struct {
		AMQPURL  string `mapstructure:"amqp_url"`
		Exchange string `mapstructure:"exchange"`
		Buffer   int    `mapstructure:"buffer"`
	} `mapstructure:"events"`
}

// Load reads the configuration. If file is empty, config.yaml is searched
// in the working directory and in $HOME/.spendwise. A missing file is fine.
func Load(file string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.spendwise")
	}

	v.SetEnvPrefix("SPENDWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("api_url", "http://localhost:8000")

	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")

	v.SetDefault("cors.allow_origins", "")
	v.SetDefault("pprof.enabled", false)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "data/spendwise.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "spendwise")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "spendwise")

	v.SetDefault("ledger.account", "default")
	v.SetDefault("ledger.timezone", "UTC")

	v.SetDefault("input.max_length", 1000)

	v.SetDefault("categorizer.keywords_file", "")

	v.SetDefault("advisor.provider", ProviderHeuristic)
	v.SetDefault("advisor.model", "gemini-2.0-flash")
	v.SetDefault("advisor.timeout", 5*time.Second)
	v.SetDefault("advisor.max_concurrent", 4)
	v.SetDefault("advisor.api_key", "")

	v.SetDefault("events.amqp_url", "")
	v.SetDefault("events.exchange", "spendwise.pipeline")
	v.SetDefault("events.buffer", 64)
}

// bindEnv binds the unprefixed variables that deployments already use.
// The prefixed variable wins if both are set.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"api_url":            "API_URL",
		"log.format":         "LOG_FORMAT",
		"cors.allow_origins": "CORS_ALLOW_ORIGINS",
		"pprof.enabled":      "ENABLE_PPROF",
		"advisor.api_key":    "GEMINI_API_KEY",
		"events.amqp_url":    "AMQP_URL",
		"database.host":      "DB_HOST",
		"database.port":      "DB_PORT",
		"database.user":      "DB_USER",
		"database.password":  "DB_PASSWORD",
		"database.name":      "DB_NAME",
	}

	for key, env := range bindings {
		prefixed := "SPENDWISE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}

	return nil
}

// Validate checks the configuration for values the backend cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if _, err := url.ParseRequestURI(c.APIURL); err != nil {
		errs = append(errs, fmt.Errorf("api_url must be a valid URL: %w", err))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
		}
	}

	switch c.Log.Format {
	case "", "json", "human":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q (must be 'json' or 'human')", c.Log.Format))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn must be set for sqlite"))
		}
	case DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q (must be 'sqlite' or 'postgres')", c.Database.Driver))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("unknown time zone %q", c.Ledger.Timezone))
	}

	if strings.TrimSpace(c.Ledger.Account) == "" {
		errs = append(errs, errors.New("ledger.account must not be empty"))
	}

	if c.Input.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("input.max_length must not be negative, got %d", c.Input.MaxLength))
	}

	switch c.Advisor.Provider {
	case ProviderHeuristic, ProviderNone:
	case ProviderGenAI:
		if c.Advisor.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the genai advisor"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown advisor provider %q (must be 'heuristic', 'genai' or 'none')", c.Advisor.Provider))
	}

	if c.Advisor.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("advisor.timeout must be positive, got %s", c.Advisor.Timeout))
	}

	if c.Advisor.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("advisor.max_concurrent must be at least 1, got %d", c.Advisor.MaxConcurrent))
	}

	if c.Events.Buffer < 1 {
		errs = append(errs, fmt.Errorf("events.buffer must be at least 1, got %d", c.Events.Buffer))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Location returns the time zone of the ledger.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Ledger.Timezone)
}

// AllowOrigins returns the origins allowed for CORS requests.
func (c *Config) AllowOrigins() []string {
	return strings.Fields(c.CORS.AllowOrigins)
}

// PostgresDSN returns the configured DSN or builds one from the
// connection settings.
func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" && c.Database.DSN != "data/spendwise.db" {
		return c.Database.DSN
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name)
}
