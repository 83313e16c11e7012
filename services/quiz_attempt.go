package services

import (
	"github.com/anjiri1684/wiki_quiz/models"
	"github.com/anjiri1684/wiki_quiz/utils"
	"github.com/google/uuid"
)

type AttemptPhase string

const (
	PhaseAnswering AttemptPhase = "answering"
	PhaseRevealed  AttemptPhase = "revealed"
)

// OptionClass is how a single option is presented for the current state.
type OptionClass string

const (
	OptionUnselected OptionClass = "unselected"
	OptionSelected   OptionClass = "selected"
	OptionCorrect    OptionClass = "correct"
	OptionIncorrect  OptionClass = "incorrect"
	OptionMuted      OptionClass = "muted"
)

const maxEntityChips = 3

// QuizAttempt is one interactive pass over a fixed quiz. Answers can change
// until Reveal; after that the attempt is frozen. Not safe for concurrent
// use; SessionController serializes access.
type QuizAttempt struct {
	id       string
	doc      models.QuizDocument
	answers  map[int]string
	revealed bool
}

func NewQuizAttempt(doc models.QuizDocument) *QuizAttempt {
	return &QuizAttempt{
		id:      uuid.NewString(),
		doc:     doc,
		answers: make(map[int]string, len(doc.Quiz)),
	}
}

func (a *QuizAttempt) ID() string { return a.id }

func (a *QuizAttempt) Document() models.QuizDocument { return a.doc }

func (a *QuizAttempt) Phase() AttemptPhase {
	if a.revealed {
		return PhaseRevealed
	}
	return PhaseAnswering
}

func (a *QuizAttempt) Revealed() bool { return a.revealed }

// SelectAnswer records option for question index, replacing any earlier
// pick. It does nothing once the attempt is revealed.
func (a *QuizAttempt) SelectAnswer(index int, option string) error {
	if a.revealed {
		return nil
	}
	if index < 0 || index >= len(a.doc.Quiz) {
		return ErrInvalidSelection
	}
	for _, opt := range a.doc.Quiz[index].Options {
		if opt == option {
			// Keep the document's string; callers may hand in borrowed buffers.
			a.answers[index] = opt
			return nil
		}
	}
	return ErrInvalidSelection
}

func (a *QuizAttempt) Answer(index int) (string, bool) {
	opt, ok := a.answers[index]
	return opt, ok
}

func (a *QuizAttempt) Answers() map[int]string {
	out := make(map[int]string, len(a.answers))
	for k, v := range a.answers {
		out[k] = v
	}
	return out
}

func (a *QuizAttempt) CanSubmit() bool {
	for i := range a.doc.Quiz {
		if _, ok := a.answers[i]; !ok {
			return false
		}
	}
	return true
}

func (a *QuizAttempt) Reveal() error {
	if a.revealed {
		return nil
	}
	if !a.CanSubmit() {
		return ErrIncompleteAnswers
	}
	a.revealed = true
	return nil
}

// Score counts exact, case-sensitive matches against each question's answer.
func (a *QuizAttempt) Score() int {
	correct := 0
	for i, q := range a.doc.Quiz {
		if picked, ok := a.answers[i]; ok && picked == q.Answer {
			correct++
		}
	}
	return correct
}

func (a *QuizAttempt) ClassifyOption(index int, option string) OptionClass {
	if index < 0 || index >= len(a.doc.Quiz) {
		return OptionUnselected
	}
	picked, hasPick := a.answers[index]
	selected := hasPick && picked == option
	if !a.revealed {
		if selected {
			return OptionSelected
		}
		return OptionUnselected
	}
	switch {
	case option == a.doc.Quiz[index].Answer:
		return OptionCorrect
	case selected:
		return OptionIncorrect
	default:
		return OptionMuted
	}
}

func (a *QuizAttempt) View() *AttemptView {
	v := &AttemptView{
		ID:            a.id,
		Title:         a.doc.Title,
		Summary:       a.doc.Summary,
		People:        firstN(a.doc.KeyEntities.People, maxEntityChips),
		Organizations: firstN(a.doc.KeyEntities.Organizations, maxEntityChips),
		Phase:         a.Phase(),
		Revealed:      a.revealed,
		CanSubmit:     !a.revealed && a.CanSubmit(),
		Total:         len(a.doc.Quiz),
		Questions:     make([]QuestionView, 0, len(a.doc.Quiz)),
	}
	for i, q := range a.doc.Quiz {
		qv := QuestionView{
			Index:      i,
			Number:     i + 1,
			Text:       q.Question,
			Difficulty: q.Difficulty,
			Selected:   a.answers[i],
			Options:    make([]OptionView, 0, len(q.Options)),
		}
		for _, opt := range q.Options {
			qv.Options = append(qv.Options, OptionView{Text: opt, Class: a.ClassifyOption(i, opt)})
		}
		if a.revealed {
			qv.Explanation = q.Explanation
		}
		v.Questions = append(v.Questions, qv)
	}
	if a.revealed {
		score := a.Score()
		v.Score = &score
		v.RelatedTopics = make([]TopicLink, 0, len(a.doc.RelatedTopics))
		for _, topic := range a.doc.RelatedTopics {
			v.RelatedTopics = append(v.RelatedTopics, TopicLink{Title: topic, URL: utils.WikipediaTopicURL(topic)})
		}
	}
	return v
}

func firstN(in []string, n int) []string {
	if len(in) <= n {
		return append([]string{}, in...)
	}
	return append([]string{}, in[:n]...)
}
