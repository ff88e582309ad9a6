package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Envelope is the uniform {code, message, data} wrapper every backend
// response is expected to arrive in. code 0 or 200 signals success; anything
// else (including a missing code) is a failure.
type Envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Msg     string          `json:"msg"`
	ErrText string          `json:"error"`
	Data    json.RawMessage `json:"data"`

	// Raw and Empty mark bodies that were not a JSON envelope at all.
	// DecodeSafely fills them so callers never have to re-read the body.
	Raw   string `json:"-"`
	Empty bool   `json:"-"`
}

// OK reports whether the envelope signals success.
func (e *Envelope) OK() bool {
	return e != nil && e.Code != nil && (*e.Code == 0 || *e.Code == 200)
}

// IsSuccess is the free-function form of Envelope.OK.
func IsSuccess(e *Envelope) bool {
	return e.OK()
}

// DecodeSafely converts a raw response body into an Envelope and never fails:
// a valid JSON envelope parses as-is, an empty body yields the empty marker,
// and anything else is preserved verbatim in Raw for best-effort messaging.
func DecodeSafely(body []byte) *Envelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Envelope{Empty: true}
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return &Envelope{Raw: string(body)}
	}
	return &env
}

// ErrorMessage extracts the most useful human-readable failure text from an
// envelope: message, then msg, then error, then the trimmed raw body, then
// the caller's fallback.
func ErrorMessage(e *Envelope, fallback string) string {
	if e != nil {
		switch {
		case e.Message != "":
			return e.Message
		case e.Msg != "":
			return e.Msg
		case e.ErrText != "":
			return e.ErrText
		}
		if raw := strings.TrimSpace(e.Raw); raw != "" {
			return raw
		}
	}
	return fallback
}
