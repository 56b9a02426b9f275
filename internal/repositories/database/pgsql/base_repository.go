package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tipnest/tipnest_backend/internal/apperrors"
)

// maxTxAttempts bounds the retry loop for transactions aborted by serialization
// failures or deadlocks.
const maxTxAttempts = 3

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// txBeginner is the subset of *pgxpool.Pool that starts transactions.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RunInTx executes fn inside a transaction, retrying when Postgres aborts the
// transaction with a serialization failure (40001) or deadlock (40P01). Any other error
// rolls back and returns immediately. Exhausting the attempts surfaces
// apperrors.ErrConflictRetryExhausted so callers can tell the client to retry.
func (r *BaseRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return runInTx(ctx, r.Pool, fn)
}

func runInTx(ctx context.Context, db txBeginner, fn func(ctx context.Context, tx pgx.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
			}
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			return apperrors.NewAppError(500, "failed to begin transaction", err)
		}

		if err := fn(ctx, tx); err != nil {
			_ = tx.Rollback(ctx)
			if isRetryableTxError(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			if isRetryableTxError(err) {
				lastErr = err
				continue
			}
			return apperrors.NewAppError(500, "failed to commit transaction", err)
		}
		return nil
	}
	return apperrors.NewAppError(409, "transaction aborted after repeated conflicts",
		errors.Join(apperrors.ErrConflictRetryExhausted, lastErr))
}

// isRetryableTxError reports whether the error is a transient transaction abort.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// isUniqueViolation reports whether the error is a unique constraint violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
