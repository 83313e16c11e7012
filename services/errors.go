package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrEmptyURL          = errors.New("url is required")
	ErrInvalidSelection  = errors.New("invalid answer selection")
	ErrIncompleteAnswers = errors.New("every question must be answered before submitting")
	ErrAttemptNotFound   = errors.New("quiz attempt not found")
	ErrUnknownTab        = errors.New("unknown tab")
)

// HTTPError is a non-2xx answer from the quiz backend.
type HTTPError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "http error"
	}
	msg := strings.TrimSpace(e.Detail)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if msg == "" {
		msg = "http error"
	}
	return fmt.Sprintf("quiz api error: status=%d detail=%s", e.StatusCode, msg)
}

// parseHTTPError reads the FastAPI {"detail": "..."} envelope when present.
func parseHTTPError(status int, raw []byte) error {
	body := strings.TrimSpace(string(raw))
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	herr := &HTTPError{StatusCode: status, Body: body}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(env.Detail, &detail); err == nil {
			herr.Detail = strings.TrimSpace(detail)
		} else {
			herr.Detail = strings.TrimSpace(string(env.Detail))
		}
	}
	return herr
}
