package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MalformedQuizError reports a quiz document that cannot be rendered.
type MalformedQuizError struct {
	Reason string
}

func (e *MalformedQuizError) Error() string {
	return "malformed quiz: " + e.Reason
}

func malformed(format string, args ...interface{}) error {
	return &MalformedQuizError{Reason: fmt.Sprintf(format, args...)}
}

// NormalizeQuiz defaults missing optional collections to empty and rejects
// documents whose questions cannot be answered or scored.
func NormalizeQuiz(doc QuizDocument) (QuizDocument, error) {
	doc.Title = strings.TrimSpace(doc.Title)
	if doc.KeyEntities.People == nil {
		doc.KeyEntities.People = []string{}
	}
	if doc.KeyEntities.Organizations == nil {
		doc.KeyEntities.Organizations = []string{}
	}
	if doc.RelatedTopics == nil {
		doc.RelatedTopics = []string{}
	}
	if doc.Sections == nil {
		doc.Sections = []string{}
	}

	questions := make([]Question, len(doc.Quiz))
	for i, q := range doc.Quiz {
		q.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(q.Difficulty))))
		questions[i] = q
	}
	if doc.Quiz != nil {
		doc.Quiz = questions
	}

	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return QuizDocument{}, malformed("%s failed %q", fe.Namespace(), fe.Tag())
		}
		return QuizDocument{}, malformed("%v", err)
	}

	for i, q := range doc.Quiz {
		seen := make(map[string]struct{}, len(q.Options))
		hasAnswer := false
		for _, opt := range q.Options {
			if _, dup := seen[opt]; dup {
				return QuizDocument{}, malformed("question %d has duplicate option %q", i+1, opt)
			}
			seen[opt] = struct{}{}
			if opt == q.Answer {
				hasAnswer = true
			}
		}
		if !hasAnswer {
			return QuizDocument{}, malformed("question %d answer %q is not one of its options", i+1, q.Answer)
		}
	}
	return doc, nil
}
