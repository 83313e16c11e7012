package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
}

type Question struct {
	Question    string     `json:"question" validate:"required"`
	Options     []string   `json:"options" validate:"min=2,dive,required"`
	Answer      string     `json:"answer" validate:"required"`
	Explanation string     `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty" validate:"oneof=easy medium hard"`
}

// QuizDocument is the flattened, validated quiz that gets rendered.
// Treat it as read-only once built.
type QuizDocument struct {
	Title         string      `json:"title" validate:"required"`
	Summary       string      `json:"summary"`
	KeyEntities   KeyEntities `json:"key_entities"`
	Quiz          []Question  `json:"quiz" validate:"required,min=1,dive"`
	RelatedTopics []string    `json:"related_topics"`
	Sections      []string    `json:"sections"`
}

// QuizPayload is a partial QuizDocument as found in a backend `quiz_data`
// object. Nil fields are absent; a nil slice means the key was missing or null.
type QuizPayload struct {
	Title         *string      `json:"title,omitempty"`
	Summary       *string      `json:"summary,omitempty"`
	KeyEntities   *KeyEntities `json:"key_entities,omitempty"`
	Quiz          []Question   `json:"quiz,omitempty"`
	RelatedTopics []string     `json:"related_topics,omitempty"`
	Sections      []string     `json:"sections,omitempty"`
}

// GeneratedQuiz is the body of POST /generate. The backend either returns the
// document fields at the top level or wraps them into `quiz_data`.
type GeneratedQuiz struct {
	QuizPayload
	ID        int64        `json:"id,omitempty"`
	URL       string       `json:"url,omitempty"`
	CreatedAt Timestamp    `json:"created_at"`
	QuizData  *QuizPayload `json:"quiz_data,omitempty"`
}

func (g GeneratedQuiz) Document() (QuizDocument, error) {
	return NormalizeQuiz(MergeQuiz(g.QuizPayload, g.QuizData))
}

// MergeQuiz overlays nested on top. Fields present in nested win.
func MergeQuiz(top QuizPayload, nested *QuizPayload) QuizDocument {
	var doc QuizDocument
	apply := func(p *QuizPayload) {
		if p == nil {
			return
		}
		if p.Title != nil {
			doc.Title = *p.Title
		}
		if p.Summary != nil {
			doc.Summary = *p.Summary
		}
		if p.KeyEntities != nil {
			doc.KeyEntities = *p.KeyEntities
		}
		if p.Quiz != nil {
			doc.Quiz = p.Quiz
		}
		if p.RelatedTopics != nil {
			doc.RelatedTopics = p.RelatedTopics
		}
		if p.Sections != nil {
			doc.Sections = p.Sections
		}
	}
	apply(&top)
	apply(nested)
	return doc
}
