package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/summify-quiz-bot/internal/infra/postgres"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrInvalidSummaryID = errors.New("invalid summary id")
)

// QuizRepository reads quizzes generated by the SummifyAI backend.
//
// quiz_data is stored as text, so option order is kept as generated.
type QuizRepository struct {
	db postgres.DBTX
}

// NewQuizRepository creates a new QuizRepository with the provided database pool.
func NewQuizRepository(db postgres.DBTX) *QuizRepository {
	return &QuizRepository{db: db}
}

// GetLatestBySummaryID returns the most recently generated quiz of a summary.
func (r *QuizRepository) GetLatestBySummaryID(ctx context.Context, summaryID int64) (*entities.QuizPayload, error) {
	query := `
		SELECT quiz_data
		FROM summarizing_generatedquiz
		WHERE pdf_summary_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var raw []byte
	err := r.db.QueryRow(ctx, query, summaryID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get generated quiz: %w", err)
	}

	var payload entities.QuizPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode quiz data: %w", err)
	}

	return &payload, nil
}

// Load implements the quiz loader contract on top of GetLatestBySummaryID.
func (r *QuizRepository) Load(ctx context.Context, summaryID string) (*entities.QuizPayload, error) {
	id, err := strconv.ParseInt(summaryID, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSummaryID, summaryID)
	}

	return r.GetLatestBySummaryID(ctx, id)
}
