package handlers

import (
	"context"
	"net/http"

	"eventconsole/internal/actions"

	"github.com/go-chi/chi/v5"
)

func writeResult[T any](w http.ResponseWriter, res actions.Result[T]) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

// Create decodes the request body and runs a create action.
func Create[In, Out any](do func(ctx context.Context, in In) actions.Result[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeBody(r, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON", Code: "invalid_body"})
			return
		}
		writeResult(w, do(r.Context(), in))
	}
}

// Update decodes the request body and runs an action on the {id} route parameter.
// An empty body is passed as the zero input.
func Update[In, Out any](do func(ctx context.Context, id string, in In) actions.Result[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeBody(r, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON", Code: "invalid_body"})
			return
		}
		writeResult(w, do(r.Context(), chi.URLParam(r, "id"), in))
	}
}

// ByID runs a body-less action on the {id} route parameter.
func ByID[Out any](do func(ctx context.Context, id string) actions.Result[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, do(r.Context(), chi.URLParam(r, "id")))
	}
}
