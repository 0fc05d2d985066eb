package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
)

// FetchTransactionLimitForUpdate returns the user's row for month, locked until
// the surrounding transaction ends.
func FetchTransactionLimitForUpdate(ctx context.Context, q sqlx.QueryerContext, userID int64, month string) (*models.TransactionLimit, error) {
	var limit models.TransactionLimit
	if err := sqlx.GetContext(ctx, q, &limit, `
		SELECT user_id, date, "limit" FROM transaction_limits
		WHERE user_id = $1 AND date = $2 FOR UPDATE`, userID, month); err != nil {
		return nil, notFound(err)
	}
	return &limit, nil
}

// CreateTransactionLimit is a no-op when the month's row already exists.
func CreateTransactionLimit(ctx context.Context, e sqlx.ExecerContext, userID int64, month string, limit int) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO transaction_limits (user_id, date, "limit")
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, date) DO NOTHING`, userID, month, limit)
	return err
}

// DecrementTransactionLimit moves the limit from currentLimit to currentLimit-1.
// It fails with ErrConditionFailed if the stored value is no longer currentLimit.
func DecrementTransactionLimit(ctx context.Context, e sqlx.ExecerContext, userID int64, month string, currentLimit int) error {
	res, err := e.ExecContext(ctx, `
		UPDATE transaction_limits SET "limit" = $1
		WHERE user_id = $2 AND date = $3 AND "limit" = $4`,
		currentLimit-1, userID, month, currentLimit)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("decrement limit for user %d: %w", userID, ErrConditionFailed)
	}
	return nil
}
