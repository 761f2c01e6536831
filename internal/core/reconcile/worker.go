// Package reconcile marks uploads that were granted a slot but never confirmed.
package reconcile

import (
	"context"
	"errors"
	"time"

	"eventconsole/internal/domain/media"
	"eventconsole/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Worker polls the upload journal and flags provisional slots older than staleAfter as
// abandoned. It only updates the journal: blobs are not deleted and the backend is not called.
type Worker struct {
	journal    repositories.UploadJournal
	pollEvery  time.Duration
	staleAfter time.Duration
	batch      int
}

func NewWorker(journal repositories.UploadJournal, staleAfter time.Duration) *Worker {
	if staleAfter <= 0 {
		staleAfter = time.Hour
	}
	return &Worker{journal: journal, pollEvery: time.Minute, staleAfter: staleAfter, batch: 50}
}

func (w *Worker) Run(ctx context.Context) {
	log.Info().Dur("stale_after", w.staleAfter).Msg("reconcile worker: started")
	t := time.NewTicker(w.pollEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reconcile worker: stopping")
			return
		case <-t.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one sweep and returns how many uploads were marked abandoned.
func (w *Worker) Tick(ctx context.Context) int {
	recs, err := w.journal.ListUnconfirmed(ctx, w.staleAfter, w.batch)
	if err != nil {
		log.Error().Err(err).Msg("worker: fetch unconfirmed uploads failed")
		return 0
	}

	n := 0
	for _, rec := range recs {
		if !rec.State.Pending() {
			continue
		}
		rec.State = media.StateAbandoned
		err := w.journal.Record(ctx, rec)
		if errors.Is(err, repositories.ErrStateConflict) {
			log.Debug().Str("media_id", rec.ProvisionalID).Msg("worker: upload completed meanwhile, kept")
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("media_id", rec.ProvisionalID).Msg("worker: mark abandoned failed")
			continue
		}
		log.Warn().
			Str("media_id", rec.ProvisionalID).
			Str("folder", string(rec.Folder)).
			Str("file_name", rec.FileName).
			Time("last_seen", rec.UpdatedAt).
			Msg("upload never confirmed")
		n++
	}
	return n
}
