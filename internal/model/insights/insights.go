package insights

import (
	"bytes"
	"encoding/json"
)

// QueryRequest is the body of POST /insights.
type QueryRequest struct {
	Query string `json:"query"`
}

// AnswerResponse is the success body of POST /insights. AnswerFetched is kept
// as raw JSON so clients can render whatever value the backend produced.
type AnswerResponse struct {
	AnswerFetched json.RawMessage `json:"answer_fetched,omitempty"`
}

// ErrorResponse is written for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewAnswer wraps a plain text answer.
func NewAnswer(text string) AnswerResponse {
	raw, _ := json.Marshal(text)
	return AnswerResponse{AnswerFetched: raw}
}

// Text renders answer_fetched the way the page does: strings verbatim, any
// other JSON value as its JSON text, and a missing field as "undefined".
func (r AnswerResponse) Text() string {
	if len(r.AnswerFetched) == 0 {
		return "undefined"
	}

	// null unmarshals into a string without error, so only decode real strings.
	raw := bytes.TrimSpace(r.AnswerFetched)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
