package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrSessionExpired means the credentials could not be renewed and the user
	// has to log in again.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotAuthenticated means there is no access token at all.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidPayment   = errors.New("invalid payment")
)

const nonFieldErrors = "non_field_errors"

// APIError is a non-2xx response from the backend. Validation responses carry
// field-level messages in FieldErrors.
type APIError struct {
	StatusCode  int
	Detail      string
	FieldErrors map[string][]string
	Body        []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Detail)
	}
	if len(e.FieldErrors) > 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, strings.Join(e.Messages(), "; "))
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, string(e.Body))
}

func (e *APIError) IsValidation() bool {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500 && len(e.FieldErrors) > 0
}

func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Messages formats the field errors one per line: "amount: Amount must be a
// positive number". Fields are sorted; non-field errors carry no prefix.
func (e *APIError) Messages() []string {
	return formatFieldErrors(e.FieldErrors)
}

func formatFieldErrors(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		for _, msg := range fields[name] {
			if name == nonFieldErrors {
				out = append(out, msg)
				continue
			}
			out = append(out, name+": "+msg)
		}
	}
	return out
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}

	for key, value := range raw {
		switch key {
		case "detail", "error", "message":
			var s string
			if json.Unmarshal(value, &s) == nil && apiErr.Detail == "" {
				apiErr.Detail = s
			}
		case "code", "messages":
			// error metadata from the token endpoints, not a field
		default:
			if msgs := decodeMessages(value); len(msgs) > 0 {
				if apiErr.FieldErrors == nil {
					apiErr.FieldErrors = make(map[string][]string)
				}
				apiErr.FieldErrors[key] = msgs
			}
		}
	}
	return apiErr
}

// decodeMessages accepts the shapes DRF uses for a field: a string or a list
// of strings.
func decodeMessages(value json.RawMessage) []string {
	var one string
	if json.Unmarshal(value, &one) == nil {
		return []string{one}
	}
	var many []string
	if json.Unmarshal(value, &many) == nil {
		return many
	}
	return nil
}

// ValidationError is raised locally, before any request, with the same
// field-by-field shape as a backend validation response.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Messages() []string {
	return formatFieldErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayment
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
