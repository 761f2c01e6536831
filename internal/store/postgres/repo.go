package postgres

import (
	"context"

	"eventconsole/internal/store/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

// DB exposes the underlying pool for ad hoc maintenance queries.
func (r *Repo) DB() *pgxpool.Pool { return r.db }

// Uploads returns the upload journal backed by this pool.
func (r *Repo) Uploads() repositories.UploadJournal { return NewUploadJournal(r.db) }

// Migrate creates the tables this service owns.
func (r *Repo) Migrate(ctx context.Context) error {
	return NewUploadJournal(r.db).EnsureSchema(ctx)
}
