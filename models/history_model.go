package models

// HistoryEntry is one row of GET /quizzes.
type HistoryEntry struct {
	ID        int64        `json:"id"`
	URL       string       `json:"url"`
	Title     string       `json:"title"`
	Summary   string       `json:"summary"`
	CreatedAt Timestamp    `json:"created_at"`
	QuizData  *QuizPayload `json:"quiz_data"`
}

// Document merges the top-level title and summary with quiz_data.
func (e HistoryEntry) Document() (QuizDocument, error) {
	title, summary := e.Title, e.Summary
	top := QuizPayload{Title: &title, Summary: &summary}
	return NormalizeQuiz(MergeQuiz(top, e.QuizData))
}
