package metaads

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is the structured error envelope the platform returns on a
// non-success status. It is surfaced verbatim so the raw diagnostic reaches
// the operator.
type APIError struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	Subcode    int    `json:"error_subcode"`
	TraceID    string `json:"fbtrace_id"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "platform error %d (%s)", e.Code, e.Type)
	if e.Subcode != 0 {
		fmt.Fprintf(&b, " subcode %d", e.Subcode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.TraceID != "" {
		fmt.Fprintf(&b, " (trace %s)", e.TraceID)
	}
	return b.String()
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// parseErrorBody extracts the platform error envelope from a response body.
// Bodies that do not match the envelope still produce an APIError carrying the
// HTTP status and a snippet, so classification never loses the diagnostic.
func parseErrorBody(status int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.HTTPStatus = status
		return envelope.Error
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return &APIError{
		Message:    snippet,
		Type:       "UnknownError",
		HTTPStatus: status,
	}
}
