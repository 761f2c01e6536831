package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"eventconsole/internal/domain/media"
	"eventconsole/internal/store/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}
	ctx := context.Background()
	pool := MustOpen(ctx, dsn, 5*time.Second)
	t.Cleanup(pool.Close)
	require.NoError(t, NewRepo(pool).Migrate(ctx))
	return pool
}

func TestUploadJournalLifecycle(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	j := NewUploadJournal(pool)

	id := "test-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM media_uploads WHERE provisional_id = $1`, id)
	})

	rec := &media.Record{
		ProvisionalID: id,
		State:         media.StateRequested,
		FileName:      "hero.png",
		ContentType:   "image/png",
		Size:          2048,
		Folder:        media.FolderEvents,
		ExpiresAt:     "2026-01-01T00:00:00Z",
	}
	require.NoError(t, j.Record(ctx, rec))
	assert.False(t, rec.CreatedAt.IsZero())

	pending, err := j.ListUnconfirmed(ctx, -time.Minute, 100)
	require.NoError(t, err)
	assert.True(t, containsID(pending, id))

	rec.State = media.StateConfirmed
	rec.FinalID = "final-1"
	require.NoError(t, j.Record(ctx, rec))

	// A later write without a final id keeps the stored one.
	rec.State = media.StateFinalized
	rec.FinalID = ""
	require.NoError(t, j.Record(ctx, rec))

	var finalID, state string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT final_id, state FROM media_uploads WHERE provisional_id = $1`, id).Scan(&finalID, &state))
	assert.Equal(t, "final-1", finalID)
	assert.Equal(t, string(media.StateFinalized), state)

	pending, err = j.ListUnconfirmed(ctx, -time.Minute, 100)
	require.NoError(t, err)
	assert.False(t, containsID(pending, id))

	// A sweep that listed the row earlier must not overwrite the finalized state.
	rec.State = media.StateAbandoned
	assert.ErrorIs(t, j.Record(ctx, rec), repositories.ErrStateConflict)
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT state FROM media_uploads WHERE provisional_id = $1`, id).Scan(&state))
	assert.Equal(t, string(media.StateFinalized), state)
}

func containsID(recs []*media.Record, id string) bool {
	for _, r := range recs {
		if r.ProvisionalID == id {
			return true
		}
	}
	return false
}
