package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrInvalidSummaryID = errors.New("invalid summary id")
)

// quizExtensions lists the file formats tried, in lookup order.
var quizExtensions = []string{".yaml", ".yml", ".json"}

// FileQuizRepository reads prepared quizzes from a directory.
// A quiz for summary 42 lives in 42.yaml, 42.yml or 42.json.
type FileQuizRepository struct {
	dir string
}

// NewFileQuizRepository creates a new FileQuizRepository rooted at dir.
func NewFileQuizRepository(dir string) *FileQuizRepository {
	return &FileQuizRepository{dir: dir}
}

// Load reads and decodes the quiz file of the summary.
func (r *FileQuizRepository) Load(ctx context.Context, summaryID string) (*entities.QuizPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if summaryID == "" || summaryID == "." || summaryID == ".." ||
		strings.ContainsAny(summaryID, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSummaryID, summaryID)
	}

	for _, ext := range quizExtensions {
		path := filepath.Join(r.dir, summaryID+ext)

		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read quiz file: %w", err)
		}

		payload, err := decodeQuiz(data, ext)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return payload, nil
	}

	return nil, fmt.Errorf("%w: summary %s", ErrQuizNotFound, summaryID)
}

func decodeQuiz(data []byte, ext string) (*entities.QuizPayload, error) {
	var payload entities.QuizPayload
	if len(strings.TrimSpace(string(data))) == 0 {
		return &payload, nil
	}

	if ext == ".json" {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		return &payload, nil
	}

	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
