package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Error is returned by every call that did not produce a 2xx response.
// Status is 0 when the request never reached the server.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the failure happened before any response was received.
func (e *Error) IsTransport() bool {
	return e.Status == 0
}

// IsNotFound reports whether the server answered 404.
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// NewTransportError classifies a failure of the round trip itself.
func NewTransportError(err error) *Error {
	return &Error{Status: 0, Message: err.Error(), Err: err}
}

// errorBody is the subset of backend error payloads the console understands.
// Both plain API errors ({message, code}) and problem details ({title}) are accepted.
type errorBody struct {
	Message string          `json:"message"`
	Title   string          `json:"title"`
	Code    json.RawMessage `json:"code"`
}

// NewResponseError builds the typed error for a non-2xx response. The message is taken from
// the JSON body's "message", then "title", then the raw body text, then the status text.
func NewResponseError(status int, statusLine string, body []byte) *Error {
	e := &Error{Status: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		e.Code = rawCode(parsed.Code)
		switch {
		case parsed.Message != "":
			e.Message = parsed.Message
		case parsed.Title != "":
			e.Message = parsed.Title
		}
	}
	if e.Message == "" {
		if text := strings.TrimSpace(string(body)); text != "" {
			e.Message = text
		}
	}
	if e.Message == "" {
		e.Message = statusText(status, statusLine)
	}
	return e
}

func rawCode(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// statusText strips the numeric prefix from a status line such as "404 Not Found".
func statusText(status int, statusLine string) string {
	text := strings.TrimSpace(strings.TrimPrefix(statusLine, strconv.Itoa(status)))
	if text == "" {
		text = http.StatusText(status)
	}
	if text == "" {
		text = "request failed with status " + strconv.Itoa(status)
	}
	return text
}
