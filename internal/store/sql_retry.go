package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// retryAttempts is the number of re-runs after the first failed attempt.
	retryAttempts = 3

	// retryDelay is the constant pause between attempts.
	retryDelay = 100 * time.Millisecond
)

// withRetry runs op and re-runs it when the error classifier marks the
// failure as [Retryable] (connection loss, serialization failure, deadlock).
// Non-retryable errors, including constraint violations and sql.ErrNoRows,
// surface after the first attempt.
func (db *DB) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewConstant(retryDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			return retry.RetryableError(err)
		}

		return err
	})
}
