package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventconsole/internal/domain/media"
	"eventconsole/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uploadJournalSchema = `
CREATE TABLE IF NOT EXISTS media_uploads (
    provisional_id TEXT PRIMARY KEY,
    final_id       TEXT NOT NULL DEFAULT '',
    state          TEXT NOT NULL,
    file_name      TEXT NOT NULL,
    content_type   TEXT NOT NULL,
    size_bytes     BIGINT NOT NULL,
    folder         TEXT NOT NULL,
    expires_at     TEXT NOT NULL DEFAULT '',
    url            TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS media_uploads_pending_idx
    ON media_uploads (updated_at) WHERE state IN ('requested', 'uploading');`

// uploadJournal implements repositories.UploadJournal with pure data access
type uploadJournal struct {
	db *pgxpool.Pool
}

// NewUploadJournal creates a new upload journal
func NewUploadJournal(db *pgxpool.Pool) *uploadJournal {
	return &uploadJournal{db: db}
}

// EnsureSchema creates the journal table if it does not exist
func (j *uploadJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.Exec(ctx, uploadJournalSchema); err != nil {
		return fmt.Errorf("create media_uploads: %w", err)
	}
	return nil
}

// Record upserts the row for rec.ProvisionalID. Empty final id and url never overwrite stored ones.
// Marking a row abandoned only succeeds while it is still requested or uploading; otherwise
// repositories.ErrStateConflict is returned.
func (j *uploadJournal) Record(ctx context.Context, rec *media.Record) error {
	err := j.db.QueryRow(ctx, `
		INSERT INTO media_uploads (provisional_id, final_id, state, file_name, content_type,
		                           size_bytes, folder, expires_at, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provisional_id) DO UPDATE SET
		    state = EXCLUDED.state,
		    final_id = COALESCE(NULLIF(EXCLUDED.final_id, ''), media_uploads.final_id),
		    url = COALESCE(NULLIF(EXCLUDED.url, ''), media_uploads.url),
		    updated_at = now()
		WHERE EXCLUDED.state <> 'abandoned' OR media_uploads.state IN ('requested', 'uploading')
		RETURNING created_at, updated_at`,
		rec.ProvisionalID, rec.FinalID, string(rec.State), rec.FileName, rec.ContentType,
		rec.Size, string(rec.Folder), rec.ExpiresAt, rec.URL).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrStateConflict
	}
	return err
}

// ListUnconfirmed finds uploads still holding a provisional id that were last touched before olderThan ago
func (j *uploadJournal) ListUnconfirmed(ctx context.Context, olderThan time.Duration, limit int) ([]*media.Record, error) {
	rows, err := j.db.Query(ctx, `
		SELECT provisional_id, final_id, state, file_name, content_type, size_bytes,
		       folder, expires_at, url, created_at, updated_at
		FROM media_uploads
		WHERE state IN ('requested', 'uploading')
		  AND updated_at < now() - make_interval(secs => $1)
		ORDER BY updated_at ASC
		LIMIT $2`, olderThan.Seconds(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]*media.Record, error) {
	var out []*media.Record
	for rows.Next() {
		var (
			rec           media.Record
			state, folder string
		)
		if err := rows.Scan(&rec.ProvisionalID, &rec.FinalID, &state, &rec.FileName, &rec.ContentType,
			&rec.Size, &folder, &rec.ExpiresAt, &rec.URL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.State = media.State(state)
		rec.Folder = media.Folder(folder)
		out = append(out, &rec)
	}
	return out, rows.Err()
}
