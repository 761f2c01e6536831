package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// MustOpen connects to Postgres and waits for it to answer, retrying with exponential
// backoff for up to maxWait. Startup is aborted if it never does.
func MustOpen(ctx context.Context, dsn string, maxWait time.Duration) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	err = backoff.RetryNotify(func() error {
		return pool.Ping(ctx)
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("db not ready")
	})
	if err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("db ping fail")
	}
	return pool
}
