package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventconsole/internal/api"
	"eventconsole/internal/upload"

	"github.com/stretchr/testify/assert"
)

func TestWriteErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found passes through", &api.Error{Status: http.StatusNotFound, Message: "gone"}, http.StatusNotFound},
		{"transport", api.NewTransportError(errors.New("dial tcp: refused")), http.StatusBadGateway},
		{"non error status", &api.Error{Status: http.StatusOK, Message: "read failed"}, http.StatusBadGateway},
		{"validation", &upload.ValidationError{Field: "size", Message: "too big"}, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
