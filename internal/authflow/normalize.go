package authflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/esti34/capsule/internal/apiclient"
)

// NormalizeError turns a failed call into the one string shown to the user.
// A string detail from the server is used as is; a list of field errors is
// joined with ", "; anything else yields fallback.
func NormalizeError(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Detail) == 0 {
		return fallback
	}

	var detail string
	if json.Unmarshal(apiErr.Detail, &detail) == nil {
		if detail != "" {
			return detail
		}
		return fallback
	}

	var items []json.RawMessage
	if json.Unmarshal(apiErr.Detail, &items) != nil || len(items) == 0 {
		return fallback
	}
	msgs := make([]string, 0, len(items))
	for _, item := range items {
		msgs = append(msgs, itemMessage(item))
	}
	return strings.Join(msgs, ", ")
}

// itemMessage returns the item's msg when it is a string, else the item itself
// as compact JSON.
func itemMessage(item json.RawMessage) string {
	var withMsg struct {
		Msg json.RawMessage `json:"msg"`
	}
	if json.Unmarshal(item, &withMsg) == nil && len(withMsg.Msg) > 0 && string(withMsg.Msg) != "null" {
		var msg string
		if json.Unmarshal(withMsg.Msg, &msg) == nil {
			return msg
		}
	}
	var buf bytes.Buffer
	if json.Compact(&buf, item) != nil {
		return string(item)
	}
	return buf.String()
}
