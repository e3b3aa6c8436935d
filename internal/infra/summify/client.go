package summify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aliskhannn/summify-quiz-bot/internal/domain/entities"
)

var ErrFetchFailed = errors.New("failed to fetch quiz data")

const generateQuizPath = "/api/generate-quiz/"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 4 << 20

// Config holds SummifyAI backend connection settings.
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Client loads generated quizzes from the SummifyAI backend.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new Client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateQuizRequest struct {
	SummaryID string `json:"summary_id"`
}

type generateQuizResponse struct {
	QuizID   json.Number           `json:"quiz_id"`
	QuizData *entities.QuizPayload `json:"quiz_data"`
}

// errorResponse is the body the backend sends with a failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// Load asks the backend to generate a quiz for the summary and returns it.
func (c *Client) Load(ctx context.Context, summaryID string) (*entities.QuizPayload, error) {
	body, err := json.Marshal(generateQuizRequest{SummaryID: summaryID})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generateQuizPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&apiErr)
		if apiErr.Error != "" {
			return nil, fmt.Errorf("%w: HTTP %d: %s", ErrFetchFailed, resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}

	var out generateQuizResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode quiz response: %w", err)
	}

	if out.QuizData == nil {
		return &entities.QuizPayload{}, nil
	}

	return out.QuizData, nil
}
