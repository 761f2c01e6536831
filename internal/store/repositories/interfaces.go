package repositories

import (
	"context"
	"errors"
	"time"

	"eventconsole/internal/domain/media"
)

// ErrStateConflict is returned by Record when an upload is marked abandoned after it already
// moved past its provisional states. The stored row is left unchanged.
var ErrStateConflict = errors.New("upload already left its pending state")

// UploadJournal defines the contract for recording upload lifecycle transitions
type UploadJournal interface {
	// Record upserts the row of rec.ProvisionalID with the latest state
	Record(ctx context.Context, rec *media.Record) error
	// ListUnconfirmed returns uploads that never reached confirmation and were last touched before olderThan ago
	ListUnconfirmed(ctx context.Context, olderThan time.Duration, limit int) ([]*media.Record, error)
}
