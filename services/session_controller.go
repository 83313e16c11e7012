package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/anjiri1684/wiki_quiz/models"
)

const (
	generationFailedMessage = "Failed. Check URL or Backend Console."
	detailNotFoundMessage   = "Quiz not found."
	detailFailedMessage     = "Failed to load this quiz."
)

// SessionController owns the UI state of one browser session: the active
// tab, the generation request, the history list and the history detail view.
//
// Generation, history and detail each carry a monotonic request sequence.
// A response is applied only if its sequence is still the latest one issued,
// so overlapping requests settle on the most recent.
type SessionController struct {
	backend  QuizBackend
	log      *logger.Logger
	onChange func(SessionState)

	// pubMu orders snapshots with their delivery so listeners never see an
	// older state after a newer one.
	pubMu sync.Mutex

	mu  sync.Mutex
	tab Tab

	genSeq    uint64
	genCancel context.CancelFunc
	genStatus GenerationStatus
	genURL    string
	genErr    string
	current   *QuizAttempt

	histSeq     uint64
	histLoading bool
	histLoaded  bool
	history     []models.HistoryEntry

	detailSeq     uint64
	detailOpen    bool
	detailLoading bool
	detailErr     string
	detail        *QuizAttempt
}

func NewSessionController(backend QuizBackend, log *logger.Logger) *SessionController {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionController{
		backend:   backend,
		log:       log,
		tab:       TabGenerate,
		genStatus: GenerationIdle,
	}
}

// OnChange registers fn to receive a snapshot after every state change.
func (c *SessionController) OnChange(fn func(SessionState)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *SessionController) publish() {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn(c.Snapshot())
	}
}

// SelectTab switches the visible tab. Selecting history reloads the list.
func (c *SessionController) SelectTab(ctx context.Context, tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}
	c.mu.Lock()
	c.tab = Tab(strings.Clone(string(tab)))
	c.mu.Unlock()

	if tab == TabHistory {
		c.LoadHistory(ctx)
		return nil
	}
	c.publish()
	return nil
}

// RequestGeneration asks the backend for a quiz about articleURL. Backend
// failures end up in the session state; only an empty url is returned as an
// error, in which case nothing changes.
func (c *SessionController) RequestGeneration(ctx context.Context, articleURL string) error {
	articleURL = strings.Clone(strings.TrimSpace(articleURL))
	if articleURL == "" {
		return ErrEmptyURL
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.genSeq++
	seq := c.genSeq
	if c.genCancel != nil {
		c.genCancel()
	}
	c.genCancel = cancel
	c.genStatus = GenerationLoading
	c.genURL = articleURL
	c.genErr = ""
	c.current = nil
	c.mu.Unlock()
	c.publish()

	doc, err := c.backend.Generate(reqCtx, articleURL)

	c.mu.Lock()
	if seq != c.genSeq {
		c.mu.Unlock()
		c.log.Debug("discarding superseded quiz generation", "seq", seq, "url", articleURL)
		return nil
	}
	c.genCancel = nil
	if err != nil {
		c.genStatus = GenerationError
		c.genErr = generationErrorMessage(err)
		c.mu.Unlock()
		c.log.Warn("quiz generation failed", "url", articleURL, "error", err)
		c.publish()
		return nil
	}
	c.genStatus = GenerationSuccess
	c.current = NewQuizAttempt(doc)
	c.mu.Unlock()

	c.log.Info("quiz generated", "url", articleURL, "title", doc.Title, "questions", len(doc.Quiz))
	c.publish()
	return nil
}

func generationErrorMessage(err error) string {
	var merr *models.MalformedQuizError
	if errors.As(err, &merr) {
		return "The generated quiz could not be displayed (" + merr.Reason + ")."
	}
	return generationFailedMessage
}

// LoadHistory fetches the list of past quizzes. Failures are logged and
// leave an empty list behind.
func (c *SessionController) LoadHistory(ctx context.Context) {
	c.mu.Lock()
	c.histSeq++
	seq := c.histSeq
	c.histLoading = true
	c.mu.Unlock()
	c.publish()

	entries, err := c.backend.ListQuizzes(ctx)

	c.mu.Lock()
	if seq != c.histSeq {
		c.mu.Unlock()
		return
	}
	c.histLoading = false
	c.histLoaded = true
	if err != nil {
		c.history = nil
	} else {
		c.history = entries
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("failed to fetch quiz history", "error", err)
	}
	c.publish()
}

// SelectHistoryEntry opens the detail view for a past quiz. Entries missing
// from the loaded list are fetched individually.
func (c *SessionController) SelectHistoryEntry(ctx context.Context, id int64) {
	c.mu.Lock()
	c.detailSeq++
	seq := c.detailSeq
	c.detailOpen = true
	c.detailErr = ""
	c.detail = nil
	entry, found := c.findHistoryLocked(id)
	c.detailLoading = !found
	c.mu.Unlock()

	if !found {
		c.publish()
		fetched, err := c.backend.GetQuiz(ctx, id)
		if err != nil {
			c.log.Warn("failed to fetch quiz", "quiz_id", id, "error", err)
			msg := detailFailedMessage
			if errors.Is(err, ErrQuizNotFound) {
				msg = detailNotFoundMessage
			}
			c.finishDetail(seq, nil, msg)
			return
		}
		entry = fetched
	}

	doc, err := entry.Document()
	if err != nil {
		c.log.Warn("history entry is malformed", "quiz_id", id, "error", err)
		var merr *models.MalformedQuizError
		msg := detailFailedMessage
		if errors.As(err, &merr) {
			msg = "This quiz could not be displayed (" + merr.Reason + ")."
		}
		c.finishDetail(seq, nil, msg)
		return
	}
	c.finishDetail(seq, NewQuizAttempt(doc), "")
}

func (c *SessionController) finishDetail(seq uint64, attempt *QuizAttempt, errMsg string) {
	c.mu.Lock()
	if seq != c.detailSeq {
		c.mu.Unlock()
		return
	}
	c.detailLoading = false
	c.detail = attempt
	c.detailErr = errMsg
	c.mu.Unlock()
	c.publish()
}

func (c *SessionController) findHistoryLocked(id int64) (models.HistoryEntry, bool) {
	for _, e := range c.history {
		if e.ID == id {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

// CloseDetail dismisses the detail view and drops its attempt.
func (c *SessionController) CloseDetail() {
	c.mu.Lock()
	c.detailSeq++
	c.detailOpen = false
	c.detailLoading = false
	c.detailErr = ""
	c.detail = nil
	c.mu.Unlock()
	c.publish()
}

// SelectAnswer forwards to the mounted attempt with the given id.
func (c *SessionController) SelectAnswer(attemptID string, index int, option string) error {
	c.mu.Lock()
	a := c.attemptLocked(attemptID)
	if a == nil {
		c.mu.Unlock()
		return ErrAttemptNotFound
	}
	err := a.SelectAnswer(index, option)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

func (c *SessionController) Submit(attemptID string) error {
	c.mu.Lock()
	a := c.attemptLocked(attemptID)
	if a == nil {
		c.mu.Unlock()
		return ErrAttemptNotFound
	}
	err := a.Reveal()
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

func (c *SessionController) attemptLocked(id string) *QuizAttempt {
	if c.current != nil && c.current.ID() == id {
		return c.current
	}
	if c.detail != nil && c.detail.ID() == id {
		return c.detail
	}
	return nil
}

// Close cancels any in-flight generation. Used when the session is evicted.
func (c *SessionController) Close() {
	c.mu.Lock()
	c.genSeq++
	if c.genCancel != nil {
		c.genCancel()
		c.genCancel = nil
	}
	c.onChange = nil
	c.mu.Unlock()
}

func (c *SessionController) Snapshot() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := SessionState{
		Tab: c.tab,
		Generation: GenerationView{
			Status:  c.genStatus,
			Loading: c.genStatus == GenerationLoading,
			URL:     c.genURL,
			Error:   c.genErr,
		},
		History: HistoryView{
			Loading: c.histLoading,
			Loaded:  c.histLoaded,
			Entries: make([]HistoryRow, 0, len(c.history)),
		},
		Detail: DetailView{
			Open:    c.detailOpen,
			Loading: c.detailLoading,
			Error:   c.detailErr,
		},
	}
	if c.current != nil {
		st.Generation.Quiz = c.current.View()
	}
	for _, e := range c.history {
		st.History.Entries = append(st.History.Entries, HistoryRow{
			ID:        e.ID,
			Title:     e.Title,
			URL:       e.URL,
			CreatedAt: e.CreatedAt,
			Date:      e.CreatedAt.DateString(),
		})
	}
	st.History.Empty = !c.histLoading && len(c.history) == 0
	if c.detail != nil {
		st.Detail.Quiz = c.detail.View()
	}
	return st
}
