package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/AleeDe/nafaverse/internal/common"
)

// APIError is a non-2xx answer from the backend. Err, when set, is the
// common sentinel the status maps to.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v (%d): %s", e.Err, e.StatusCode, msg)
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// newAPIError classifies a response status. body is the raw response body.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{
		StatusCode: status,
		Body:       string(body),
		Message:    extractMessage(body),
	}
	switch status {
	case http.StatusUnauthorized:
		e.Err = common.ErrUnauthorized
	case http.StatusTooManyRequests:
		e.Err = common.ErrRateLimited
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e.Err = common.ErrValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.Err = common.ErrUnavailable
	}
	return e
}

// extractMessage reads {"error": ...} or {"message": ...}, falling back to a
// short plain-text body.
func extractMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
		return ""
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 || strings.HasPrefix(s, "<") {
		return ""
	}
	return s
}
