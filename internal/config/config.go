package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownQuizSource           = errors.New("unknown quiz source")
)

// Quiz sources.
const (
	SourceAPI      = "api"
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	Quiz             Quiz     `mapstructure:"quiz"`
	Summify          Summify  `mapstructure:"summify"`
	DB               DB       `mapstructure:"database"`
	Sessions         Sessions `mapstructure:"sessions"`
}

// Quiz selects where quizzes are loaded from.
type Quiz struct {
	Source string `mapstructure:"source"` // api, postgres or file
	Dir    string `mapstructure:"dir"`    // directory of quiz files for the file source
}

// Summify contains SummifyAI backend settings.
type Summify struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIToken string        `mapstructure:"-"` // bearer token loaded from environment
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Sessions controls how long idle quiz sessions are kept.
type Sessions struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron expression
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
// The Telegram token is not checked here; see RequireTelegramToken.
func Load() (*Config, error) {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("quiz.source", SourceAPI)
	v.SetDefault("quiz.dir", "assets/quizzes")
	v.SetDefault("summify.base_url", "http://127.0.0.1:8000")
	v.SetDefault("summify.timeout", "30s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("sessions.idle_ttl", "2h")
	v.SetDefault("sessions.sweep_schedule", "*/15 * * * *")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("summify_api_token", "SUMMIFY_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Summify.APIToken = v.GetString("summify_api_token")
	cfg.DB.URL = v.GetString("database_url")

	cfg.Quiz.Source = strings.ToLower(strings.TrimSpace(cfg.Quiz.Source))
	switch cfg.Quiz.Source {
	case SourceAPI, SourceFile:
	case SourcePostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuizSource, cfg.Quiz.Source)
	}

	return &cfg, nil
}

// RequireTelegramToken reports whether the bot token is configured.
func (c *Config) RequireTelegramToken() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}
