package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/upload"

	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response failed")
	}
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError maps load failures onto the console's status codes. Backend statuses pass
// through so that a missing entity stays a 404. An unreachable backend, or any failure that
// carries no error status, is a 502.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *api.Error
	var valErr *upload.ValidationError
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: valErr.Message, Code: "invalid_" + valErr.Field})
	case errors.As(err, &apiErr) && (apiErr.IsTransport() || apiErr.Status < 400):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Code: "backend_unreachable"})
	case errors.As(err, &apiErr):
		writeJSON(w, apiErr.Status, errorResponse{Error: err.Error(), Code: apiErr.Code})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// decodeBody reads an optional JSON body into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
