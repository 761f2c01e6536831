package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"eventconsole/internal/api"
	"eventconsole/internal/pagecache"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ListView serves a paginated collection through the view cache. Equivalent queries share
// one cache entry; a mutation on the collection drops every page of it. A load that overlaps
// such a mutation is served but not cached.
func ListView[T any](cache pagecache.Cache, list func(ctx context.Context, params *api.ListParams) (*api.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := pagecache.Normalize(r.URL.Path)
		params := api.ParseListParams(r.URL.Query())
		query := params.Values().Encode()

		var gen uint64
		cacheable := cache != nil
		if cacheable {
			var err error
			if gen, err = cache.Generation(r.Context(), path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("view cache generation read failed")
				cacheable = false
			}
		}
		if cacheable {
			body, ok, err := cache.Get(r.Context(), path, query)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("view cache read failed")
			}
			if ok {
				w.Header().Set("X-Cache", "HIT")
				writeRaw(w, http.StatusOK, body)
				return
			}
		}

		page, err := list(r.Context(), params)
		if err != nil {
			writeError(w, err)
			return
		}
		body, err := json.Marshal(page)
		if err != nil {
			writeError(w, err)
			return
		}

		if cacheable {
			stored, err := cache.Set(r.Context(), path, query, gen, body)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("view cache write failed")
			} else if !stored {
				log.Debug().Str("path", path).Msg("view changed while loading, not cached")
			}
			w.Header().Set("X-Cache", "MISS")
		}
		writeRaw(w, http.StatusOK, body)
	}
}

// DetailView serves a single document. Details are always read fresh and never cached.
func DetailView[D any](get func(ctx context.Context, id string) (*D, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, out)
	}
}
