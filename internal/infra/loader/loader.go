// Package loader picks the quiz source configured for the process.
package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/config"
	"github.com/aliskhannn/summify-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/summify-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/summify-quiz-bot/internal/infra/summify"
	"github.com/aliskhannn/summify-quiz-bot/internal/repository"
	"github.com/aliskhannn/summify-quiz-bot/internal/service"
)

// New returns the loader for cfg.Quiz.Source and a func releasing its resources.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.QuizLoader, func(), error) {
	switch cfg.Quiz.Source {
	case config.SourceAPI:
		logger.Info("using SummifyAI API quiz source",
			zap.String("base_url", cfg.Summify.BaseURL),
		)
		client := summify.NewClient(summify.Config{
			BaseURL:  cfg.Summify.BaseURL,
			APIToken: cfg.Summify.APIToken,
			Timeout:  cfg.Summify.Timeout,
		})
		return client, func() {}, nil

	case config.SourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		logger.Info("using postgres quiz source")
		return pgrepo.NewQuizRepository(pool), pool.Close, nil

	case config.SourceFile:
		logger.Info("using file quiz source",
			zap.String("dir", cfg.Quiz.Dir),
		)
		return repository.NewFileQuizRepository(cfg.Quiz.Dir), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownQuizSource, cfg.Quiz.Source)
	}
}
