package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/summify-quiz-bot/internal/config"
	"github.com/aliskhannn/summify-quiz-bot/internal/delivery/tui"
	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/summify-quiz-bot/internal/infra/loader"
	"github.com/aliskhannn/summify-quiz-bot/internal/logger"
)

func main() {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "summary",
			Aliases:  []string{"s"},
			Usage:    "summary id to take the quiz of",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "quiz source: api, postgres or file (overrides QUIZ_SOURCE)",
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: "quiz directory for the file source (overrides QUIZ_DIR)",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
		&cli.StringFlag{
			Name:  "debug",
			Usage: "write debug logs to this file",
		},
	}

	app := &cli.App{
		Name:  "quiz",
		Usage: "take SummifyAI quizzes in the terminal",
		Commands: []*cli.Command{
			{
				Name:   "take",
				Usage:  "take the quiz of a summary interactively",
				Flags:  sourceFlags,
				Action: takeAction,
			},
			{
				Name:   "show",
				Usage:  "print the questions of a summary's quiz with their answers",
				Flags:  sourceFlags,
				Action: showAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads configuration, applies flag overrides and builds the quiz loader.
func setup(c *cli.Context) (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if source := c.String("source"); source != "" {
		cfg.Quiz.Source = source
	}
	if dir := c.String("dir"); dir != "" {
		cfg.Quiz.Dir = dir
	}

	lg := zap.NewNop()
	if path := c.String("debug"); path != "" {
		if lg, err = logger.NewFile(path); err != nil {
			return nil, nil, nil, fmt.Errorf("open debug log: %w", err)
		}
	}

	return cfg, lg, func() { _ = lg.Sync() }, nil
}

func takeAction(c *cli.Context) error {
	cfg, lg, syncLog, err := setup(c)
	if err != nil {
		return err
	}
	defer syncLog()

	quizLoader, release, err := loader.New(c.Context, cfg, lg)
	if err != nil {
		return err
	}
	defer release()

	model := tui.NewModel(c.Context, quizLoader, c.String("summary"), tui.Options{
		NoColor: c.Bool("no-color"),
		Logger:  lg,
	})

	_, err = tea.NewProgram(model, tea.WithContext(c.Context)).Run()
	return err
}

func showAction(c *cli.Context) error {
	cfg, lg, syncLog, err := setup(c)
	if err != nil {
		return err
	}
	defer syncLog()

	quizLoader, release, err := loader.New(c.Context, cfg, lg)
	if err != nil {
		return err
	}
	defer release()

	summaryID := c.String("summary")
	payload, err := quizLoader.Load(c.Context, summaryID)
	if err != nil {
		return fmt.Errorf("load quiz: %w", err)
	}

	fmt.Print(tui.RenderQuiz(summaryID, entities.NormalizePayload(payload), c.Bool("no-color")))
	return nil
}
