package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/wiki_quiz/models"
)

type fakeBackend struct {
	generate func(ctx context.Context, url string) (models.QuizDocument, error)
	list     func(ctx context.Context) ([]models.HistoryEntry, error)
	get      func(ctx context.Context, id int64) (models.HistoryEntry, error)
}

func (f *fakeBackend) Generate(ctx context.Context, url string) (models.QuizDocument, error) {
	return f.generate(ctx, url)
}

func (f *fakeBackend) ListQuizzes(ctx context.Context) ([]models.HistoryEntry, error) {
	return f.list(ctx)
}

func (f *fakeBackend) GetQuiz(ctx context.Context, id int64) (models.HistoryEntry, error) {
	if f.get == nil {
		return models.HistoryEntry{}, ErrQuizNotFound
	}
	return f.get(ctx, id)
}

func strPtr(s string) *string { return &s }

func historyEntry(id int64, title string) models.HistoryEntry {
	return models.HistoryEntry{
		ID:      id,
		Title:   title,
		Summary: "summary of " + title,
		QuizData: &models.QuizPayload{
			Quiz: []models.Question{
				{Question: "q?", Options: []string{"A", "B"}, Answer: "A", Difficulty: models.DifficultyEasy},
			},
		},
	}
}

func TestRequestGenerationSuccess(t *testing.T) {
	var states []SessionState
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		return twoQuestionQuiz(), nil
	}}
	c := NewSessionController(backend, nil)
	c.OnChange(func(st SessionState) { states = append(states, st) })

	if err := c.RequestGeneration(context.Background(), "  https://en.wikipedia.org/wiki/Alphabet "); err != nil {
		t.Fatalf("generate: %v", err)
	}
	st := c.Snapshot()
	if st.Generation.Status != GenerationSuccess || st.Generation.Loading || st.Generation.Error != "" {
		t.Fatalf("unexpected generation state: %+v", st.Generation)
	}
	if st.Generation.Quiz == nil || st.Generation.Quiz.Title != "Alphabet" {
		t.Fatalf("quiz not stored: %+v", st.Generation.Quiz)
	}
	if st.Generation.URL != "https://en.wikipedia.org/wiki/Alphabet" {
		t.Fatalf("url not trimmed: %q", st.Generation.URL)
	}
	if len(states) < 2 || !states[0].Generation.Loading {
		t.Fatalf("listener should see loading first, got %d states", len(states))
	}
}

func TestRequestGenerationServerError(t *testing.T) {
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		return models.QuizDocument{}, &HTTPError{StatusCode: http.StatusInternalServerError}
	}}
	c := NewSessionController(backend, nil)

	if err := c.RequestGeneration(context.Background(), "https://en.wikipedia.org/wiki/X"); err != nil {
		t.Fatalf("backend failures must not propagate: %v", err)
	}
	st := c.Snapshot()
	if st.Generation.Error == "" || st.Generation.Loading || st.Generation.Quiz != nil {
		t.Fatalf("expected error state without quiz: %+v", st.Generation)
	}
	if st.Generation.Status != GenerationError {
		t.Fatalf("status=%s", st.Generation.Status)
	}
}

func TestRequestGenerationMalformedMessage(t *testing.T) {
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		return models.QuizDocument{}, &models.MalformedQuizError{Reason: "question 1 has duplicate option \"A\""}
	}}
	c := NewSessionController(backend, nil)
	_ = c.RequestGeneration(context.Background(), "u")
	if got := c.Snapshot().Generation.Error; got == generationFailedMessage || got == "" {
		t.Fatalf("malformed documents should get a specific message, got %q", got)
	}
}

func TestRequestGenerationEmptyURL(t *testing.T) {
	called := false
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		called = true
		return models.QuizDocument{}, nil
	}}
	c := NewSessionController(backend, nil)
	if err := c.RequestGeneration(context.Background(), "   "); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
	if called || c.Snapshot().Generation.Status != GenerationIdle {
		t.Fatalf("empty url must not start a request")
	}
}

func TestRequestGenerationClearsPreviousOutcome(t *testing.T) {
	fail := true
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		if fail {
			return models.QuizDocument{}, errors.New("connection refused")
		}
		return twoQuestionQuiz(), nil
	}}
	c := NewSessionController(backend, nil)
	_ = c.RequestGeneration(context.Background(), "u")
	fail = false
	_ = c.RequestGeneration(context.Background(), "u")
	st := c.Snapshot()
	if st.Generation.Error != "" || st.Generation.Quiz == nil {
		t.Fatalf("second request should clear the error: %+v", st.Generation)
	}
}

func TestRequestGenerationLatestWins(t *testing.T) {
	slowStarted := make(chan struct{})
	var slowErr error
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		if url == "slow" {
			close(slowStarted)
			<-ctx.Done()
			slowErr = ctx.Err()
			doc := twoQuestionQuiz()
			doc.Title = "Stale"
			return doc, nil
		}
		doc := twoQuestionQuiz()
		doc.Title = "Fresh"
		return doc, nil
	}}
	c := NewSessionController(backend, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.RequestGeneration(context.Background(), "slow")
	}()

	select {
	case <-slowStarted:
	case <-time.After(2 * time.Second):
		t.Fatalf("slow request never started")
	}
	_ = c.RequestGeneration(context.Background(), "fast")
	wg.Wait()

	if !errors.Is(slowErr, context.Canceled) {
		t.Fatalf("superseded request should be cancelled, got %v", slowErr)
	}
	st := c.Snapshot()
	if st.Generation.Quiz == nil || st.Generation.Quiz.Title != "Fresh" {
		t.Fatalf("stale response applied: %+v", st.Generation.Quiz)
	}
	if st.Generation.URL != "fast" || st.Generation.Status != GenerationSuccess {
		t.Fatalf("unexpected generation state: %+v", st.Generation)
	}
}

func TestSelectTabHistoryLoadsList(t *testing.T) {
	backend := &fakeBackend{list: func(ctx context.Context) ([]models.HistoryEntry, error) {
		return []models.HistoryEntry{historyEntry(5, "Five"), historyEntry(1, "One")}, nil
	}}
	c := NewSessionController(backend, nil)
	if err := c.SelectTab(context.Background(), TabHistory); err != nil {
		t.Fatalf("select tab: %v", err)
	}
	st := c.Snapshot()
	if st.Tab != TabHistory || !st.History.Loaded || st.History.Empty {
		t.Fatalf("unexpected history state: %+v", st.History)
	}
	if st.History.Entries[0].ID != 5 || st.History.Entries[1].ID != 1 {
		t.Fatalf("server order not kept: %+v", st.History.Entries)
	}
	if err := c.SelectTab(context.Background(), Tab("settings")); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
}

func TestLoadHistoryEmpty(t *testing.T) {
	backend := &fakeBackend{list: func(ctx context.Context) ([]models.HistoryEntry, error) {
		return []models.HistoryEntry{}, nil
	}}
	c := NewSessionController(backend, nil)
	c.LoadHistory(context.Background())
	st := c.Snapshot()
	if !st.History.Empty || len(st.History.Entries) != 0 {
		t.Fatalf("empty list should be flagged: %+v", st.History)
	}
}

func TestLoadHistoryFailureDegradesSilently(t *testing.T) {
	calls := 0
	backend := &fakeBackend{list: func(ctx context.Context) ([]models.HistoryEntry, error) {
		calls++
		if calls == 1 {
			return []models.HistoryEntry{historyEntry(1, "One")}, nil
		}
		return nil, &HTTPError{StatusCode: http.StatusBadGateway}
	}}
	c := NewSessionController(backend, nil)
	c.LoadHistory(context.Background())
	c.LoadHistory(context.Background())
	st := c.Snapshot()
	if !st.History.Empty || st.History.Loading || len(st.History.Entries) != 0 {
		t.Fatalf("failed fetch should leave an empty list: %+v", st.History)
	}
	if st.Generation.Error != "" || st.Detail.Error != "" {
		t.Fatalf("history failures must not surface: %+v", st)
	}
}

func TestSelectHistoryEntryMergesPayload(t *testing.T) {
	entry := historyEntry(4, "Y")
	entry.QuizData.Title = strPtr("X")
	backend := &fakeBackend{list: func(ctx context.Context) ([]models.HistoryEntry, error) {
		return []models.HistoryEntry{entry}, nil
	}}
	c := NewSessionController(backend, nil)
	c.LoadHistory(context.Background())
	c.SelectHistoryEntry(context.Background(), 4)

	st := c.Snapshot()
	if !st.Detail.Open || st.Detail.Quiz == nil {
		t.Fatalf("detail not opened: %+v", st.Detail)
	}
	if st.Detail.Quiz.Title != "X" || st.Detail.Quiz.Summary != "summary of Y" {
		t.Fatalf("merge precedence wrong: %+v", st.Detail.Quiz)
	}

	detailID := st.Detail.Quiz.ID
	if err := c.SelectAnswer(detailID, 0, "A"); err != nil {
		t.Fatalf("answer detail quiz: %v", err)
	}
	if err := c.Submit(detailID); err != nil {
		t.Fatalf("submit detail quiz: %v", err)
	}
	if s := c.Snapshot().Detail.Quiz.Score; s == nil || *s != 1 {
		t.Fatalf("detail score: %v", s)
	}

	c.CloseDetail()
	st = c.Snapshot()
	if st.Detail.Open || st.Detail.Quiz != nil {
		t.Fatalf("detail not closed: %+v", st.Detail)
	}
	if err := c.SelectAnswer(detailID, 0, "B"); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("closed attempt should be gone, got %v", err)
	}
}

func TestSelectHistoryEntryFetchesUnknownID(t *testing.T) {
	backend := &fakeBackend{
		get: func(ctx context.Context, id int64) (models.HistoryEntry, error) {
			if id == 8 {
				return historyEntry(8, "Fetched"), nil
			}
			return models.HistoryEntry{}, ErrQuizNotFound
		},
	}
	c := NewSessionController(backend, nil)
	c.SelectHistoryEntry(context.Background(), 8)
	if q := c.Snapshot().Detail.Quiz; q == nil || q.Title != "Fetched" {
		t.Fatalf("detail not fetched: %+v", q)
	}

	c.SelectHistoryEntry(context.Background(), 99)
	st := c.Snapshot()
	if st.Detail.Error != detailNotFoundMessage || st.Detail.Quiz != nil || st.Detail.Loading {
		t.Fatalf("unexpected detail state: %+v", st.Detail)
	}
}

func TestSelectHistoryEntryMalformed(t *testing.T) {
	entry := historyEntry(2, "Broken")
	entry.QuizData.Quiz[0].Answer = "Z"
	backend := &fakeBackend{list: func(ctx context.Context) ([]models.HistoryEntry, error) {
		return []models.HistoryEntry{entry}, nil
	}}
	c := NewSessionController(backend, nil)
	c.LoadHistory(context.Background())
	c.SelectHistoryEntry(context.Background(), 2)
	st := c.Snapshot()
	if st.Detail.Error == "" || st.Detail.Quiz != nil || !st.Detail.Open {
		t.Fatalf("malformed entry should show an error in the detail view: %+v", st.Detail)
	}
}

func TestSubmitIncompleteAndUnknownAttempt(t *testing.T) {
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		return twoQuestionQuiz(), nil
	}}
	c := NewSessionController(backend, nil)
	_ = c.RequestGeneration(context.Background(), "u")
	id := c.Snapshot().Generation.Quiz.ID

	if err := c.Submit(id); !errors.Is(err, ErrIncompleteAnswers) {
		t.Fatalf("expected ErrIncompleteAnswers, got %v", err)
	}
	if err := c.Submit("nope"); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
	if err := c.SelectAnswer(id, 5, "A"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestNewGenerationDropsPreviousAttempt(t *testing.T) {
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		return twoQuestionQuiz(), nil
	}}
	c := NewSessionController(backend, nil)
	_ = c.RequestGeneration(context.Background(), "u")
	first := c.Snapshot().Generation.Quiz.ID
	_ = c.RequestGeneration(context.Background(), "u")
	second := c.Snapshot().Generation.Quiz.ID
	if first == second {
		t.Fatalf("a new generation should mount a fresh attempt")
	}
	if err := c.SelectAnswer(first, 0, "A"); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("old attempt should be discarded, got %v", err)
	}
}

func TestPublishedStateEndsAtLatest(t *testing.T) {
	backend := &fakeBackend{generate: func(ctx context.Context, url string) (models.QuizDocument, error) {
		return twoQuestionQuiz(), nil
	}}
	c := NewSessionController(backend, nil)
	_ = c.RequestGeneration(context.Background(), "u")
	id := c.Snapshot().Generation.Quiz.ID

	var (
		mu   sync.Mutex
		last SessionState
	)
	c.OnChange(func(st SessionState) {
		mu.Lock()
		last = st
		mu.Unlock()
	})

	options := []string{"A", "B", "C"}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.SelectAnswer(id, 0, options[i%len(options)])
		}(i)
	}
	wg.Wait()

	want := c.Snapshot().Generation.Quiz.Questions[0].Selected
	mu.Lock()
	defer mu.Unlock()
	if got := last.Generation.Quiz.Questions[0].Selected; got != want {
		t.Fatalf("last published selection=%q, current=%q", got, want)
	}
}
