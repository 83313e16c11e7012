package services

import "github.com/anjiri1684/wiki_quiz/models"

type Tab string

const (
	TabGenerate Tab = "generate"
	TabHistory  Tab = "history"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabGenerate, TabHistory:
		return Tab(s), nil
	default:
		return "", ErrUnknownTab
	}
}

type GenerationStatus string

const (
	GenerationIdle    GenerationStatus = "idle"
	GenerationLoading GenerationStatus = "loading"
	GenerationSuccess GenerationStatus = "success"
	GenerationError   GenerationStatus = "error"
)

// SessionState is the full, serializable UI state of one browser session.
// Pages and the websocket stream are both rendered from it.
type SessionState struct {
	Tab        Tab            `json:"tab"`
	Generation GenerationView `json:"generation"`
	History    HistoryView    `json:"history"`
	Detail     DetailView     `json:"detail"`
}

type GenerationView struct {
	Status  GenerationStatus `json:"status"`
	Loading bool             `json:"loading"`
	URL     string           `json:"url"`
	Error   string           `json:"error,omitempty"`
	Quiz    *AttemptView     `json:"quiz,omitempty"`
}

type HistoryView struct {
	Loading bool         `json:"loading"`
	Loaded  bool         `json:"loaded"`
	Empty   bool         `json:"empty"`
	Entries []HistoryRow `json:"entries"`
}

type HistoryRow struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	CreatedAt models.Timestamp `json:"created_at"`
	Date      string           `json:"date"`
}

type DetailView struct {
	Open    bool         `json:"open"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
	Quiz    *AttemptView `json:"quiz,omitempty"`
}

type AttemptView struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	People        []string       `json:"people"`
	Organizations []string       `json:"organizations"`
	Phase         AttemptPhase   `json:"phase"`
	Revealed      bool           `json:"revealed"`
	CanSubmit     bool           `json:"can_submit"`
	Score         *int           `json:"score,omitempty"`
	Total         int            `json:"total"`
	Questions     []QuestionView `json:"questions"`
	RelatedTopics []TopicLink    `json:"related_topics,omitempty"`
}

type QuestionView struct {
	Index       int               `json:"index"`
	Number      int               `json:"number"`
	Text        string            `json:"question"`
	Difficulty  models.Difficulty `json:"difficulty"`
	Selected    string            `json:"selected,omitempty"`
	Options     []OptionView      `json:"options"`
	Explanation string            `json:"explanation,omitempty"`
}

type OptionView struct {
	Text  string      `json:"text"`
	Class OptionClass `json:"class"`
}

type TopicLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
