package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/sprintdesk/internal/models"
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
	Errors  models.FieldErrors
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Errors.String()
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), msg)
}

// FieldErrors returns the field-keyed errors to store in an entity slot.
func (e *APIError) FieldErrors() models.FieldErrors {
	return e.Errors
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// parseAPIError reads the backend's error body. An "errors" object is used
// as-is (list values joined), an "errors" list is folded into the server key,
// and anything else yields the generic server error.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Errors: models.BaseError()}

	var payload struct {
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	apiErr.Message = payload.Message

	if fields := fieldErrors(payload.Errors); len(fields) > 0 {
		apiErr.Errors = fields
	}
	return apiErr
}

func fieldErrors(raw json.RawMessage) models.FieldErrors {
	if len(raw) == 0 {
		return nil
	}

	var byField map[string]any
	if err := json.Unmarshal(raw, &byField); err == nil {
		out := models.FieldErrors{}
		for k, v := range byField {
			if msg := flatten(v); msg != "" {
				out[k] = msg
			}
		}
		return out
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		if msg := flatten(list); msg != "" {
			return models.FieldErrors{models.ServerErrorKey: msg}
		}
	}
	return nil
}

func flatten(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
