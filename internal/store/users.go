package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
)

const userColumns = `id, username, email, balance, role, is_verified, created_at`

func GetUserByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, q sqlx.QueryerContext, email string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// LockUser reads the user row with a row lock held until the transaction ends.
func LockUser(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, q, &user, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// DebitUserBalance subtracts amount only if the balance covers it and returns the new balance.
func DebitUserBalance(ctx context.Context, q sqlx.QueryerContext, id, amount int64) (int64, error) {
	var balance int64
	err := q.QueryRowxContext(ctx, `
		UPDATE users SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
		RETURNING balance`, amount, id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("debit user %d: %w", id, ErrConditionFailed)
	}
	return balance, checkViolation(err)
}

func CreditUserBalance(ctx context.Context, q sqlx.QueryerContext, id, amount int64) (int64, error) {
	var balance int64
	err := q.QueryRowxContext(ctx, `
		UPDATE users SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance`, amount, id).Scan(&balance)
	if err != nil {
		return 0, notFound(err)
	}
	return balance, nil
}
