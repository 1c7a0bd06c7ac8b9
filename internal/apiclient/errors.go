package apiclient

import (
	"encoding/json"
	"fmt"
)

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the API. Detail holds the raw "detail"
// member of a JSON error body, or nil when the body had none.
type APIError struct {
	StatusCode int
	Detail     json.RawMessage
	Body       []byte
}

func newAPIError(status int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	e := &APIError{StatusCode: status, Body: body}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Detail) > 0 && string(envelope.Detail) != "null" {
		e.Detail = envelope.Detail
	}
	return e
}

func (e *APIError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
