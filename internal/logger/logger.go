package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/config"
)

// New builds the application logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// NewFile builds a development logger that writes only to path.
// Terminal front ends use it so log lines do not corrupt the screen.
func NewFile(path string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}

	return zcfg.Build()
}
