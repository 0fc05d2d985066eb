package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
)

const bankAccountSelect = `
	SELECT ba.id, ba.user_id, ba.bank_id, ba.amount, ba.created_at,
		mb.name, mb.location, mb.image_url, mb.est_date
	FROM bank_accounts ba
	JOIN mock_banks mb ON mb.id = ba.bank_id`

// GetBankAccountForUpdate locks the account only when it belongs to userID.
func GetBankAccountForUpdate(ctx context.Context, q sqlx.QueryerContext, id, userID int64) (*models.BankAccount, error) {
	var account models.BankAccount
	err := sqlx.GetContext(ctx, q, &account,
		bankAccountSelect+` WHERE ba.id = $1 AND ba.user_id = $2 FOR UPDATE OF ba`, id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func DebitBankAccount(ctx context.Context, q sqlx.QueryerContext, id, amount int64) (int64, error) {
	var remaining int64
	err := q.QueryRowxContext(ctx, `
		UPDATE bank_accounts SET amount = amount - $1
		WHERE id = $2 AND amount >= $1
		RETURNING amount`, amount, id).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("debit bank account %d: %w", id, ErrConditionFailed)
	}
	return remaining, checkViolation(err)
}

func ListBankAccounts(ctx context.Context, q sqlx.QueryerContext, userID int64) ([]models.BankAccount, error) {
	accounts := []models.BankAccount{}
	err := sqlx.SelectContext(ctx, q, &accounts, bankAccountSelect+` WHERE ba.user_id = $1 ORDER BY ba.id`, userID)
	return accounts, err
}
