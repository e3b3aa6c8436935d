package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "TELEGRAM_API_TOKEN", "DATABASE_URL", "SUMMIFY_API_TOKEN",
		"QUIZ_SOURCE", "QUIZ_DIR", "SUMMIFY_BASE_URL", "SUMMIFY_TIMEOUT",
		"SESSIONS_IDLE_TTL", "SESSIONS_SWEEP_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q, want local", cfg.Env)
	}
	if cfg.Quiz.Source != SourceAPI {
		t.Errorf("Quiz.Source = %q, want api", cfg.Quiz.Source)
	}
	if cfg.Summify.Timeout != 30*time.Second {
		t.Errorf("Summify.Timeout = %v, want 30s", cfg.Summify.Timeout)
	}
	if cfg.Sessions.IdleTTL != 2*time.Hour {
		t.Errorf("Sessions.IdleTTL = %v, want 2h", cfg.Sessions.IdleTTL)
	}
	if cfg.DB.MaxConnections != 20 {
		t.Errorf("DB.MaxConnections = %d, want 20", cfg.DB.MaxConnections)
	}
	if err := cfg.RequireTelegramToken(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("RequireTelegramToken() error = %v, want ErrMissingEnvironmentVariables", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("TELEGRAM_API_TOKEN", "tg")
	t.Setenv("SUMMIFY_API_TOKEN", "jwt")
	t.Setenv("QUIZ_SOURCE", "File")
	t.Setenv("QUIZ_DIR", "/srv/quizzes")
	t.Setenv("SESSIONS_IDLE_TTL", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.Quiz.Source != SourceFile || cfg.Quiz.Dir != "/srv/quizzes" {
		t.Errorf("Quiz = %+v", cfg.Quiz)
	}
	if cfg.Summify.APIToken != "jwt" {
		t.Errorf("Summify.APIToken = %q", cfg.Summify.APIToken)
	}
	if cfg.Sessions.IdleTTL != 45*time.Minute {
		t.Errorf("Sessions.IdleTTL = %v", cfg.Sessions.IdleTTL)
	}
	if err := cfg.RequireTelegramToken(); err != nil {
		t.Errorf("RequireTelegramToken() error = %v", err)
	}
}

func TestLoadPostgresNeedsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZ_SOURCE", "postgres")

	if _, err := Load(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("Load() error = %v, want ErrMissingEnvironmentVariables", err)
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/summify")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if dsn, _ := cfg.DB.DSN(); dsn != "postgres://localhost/summify" {
		t.Errorf("DSN() = %q", dsn)
	}
}

func TestLoadUnknownSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZ_SOURCE", "ftp")

	if _, err := Load(); !errors.Is(err, ErrUnknownQuizSource) {
		t.Fatalf("Load() error = %v, want ErrUnknownQuizSource", err)
	}
}
