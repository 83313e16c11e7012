package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anjiri1684/wiki_quiz/models"
)

var ErrQuizNotFound = errors.New("quiz not found")

// QuizBackend is the external quiz generation service.
type QuizBackend interface {
	Generate(ctx context.Context, articleURL string) (models.QuizDocument, error)
	ListQuizzes(ctx context.Context) ([]models.HistoryEntry, error)
	GetQuiz(ctx context.Context, id int64) (models.HistoryEntry, error)
}

type QuizAPIOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type QuizAPIClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewQuizAPIClient(opts QuizAPIOptions) (*QuizAPIClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("quiz api base url required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &QuizAPIClient{baseURL: baseURL, timeout: timeout, httpClient: hc}, nil
}

type generateRequest struct {
	URL string `json:"url"`
}

func (c *QuizAPIClient) Generate(ctx context.Context, articleURL string) (models.QuizDocument, error) {
	var resp models.GeneratedQuiz
	if err := c.doJSON(ctx, http.MethodPost, "/generate", generateRequest{URL: articleURL}, &resp); err != nil {
		return models.QuizDocument{}, err
	}
	return resp.Document()
}

func (c *QuizAPIClient) ListQuizzes(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return entries, nil
}

func (c *QuizAPIClient) GetQuiz(ctx context.Context, id int64) (models.HistoryEntry, error) {
	var entry models.HistoryEntry
	err := c.doJSON(ctx, http.MethodGet, "/quizzes/"+strconv.FormatInt(id, 10), nil, &entry)
	if err != nil {
		var herr *HTTPError
		if errors.As(err, &herr) && herr.StatusCode == http.StatusNotFound {
			return models.HistoryEntry{}, ErrQuizNotFound
		}
		return models.HistoryEntry{}, err
	}
	return entry, nil
}

func (c *QuizAPIClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseHTTPError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
