package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
)

const loadFundSelect = `
	SELECT lft.id, lft.type, lft.user_id, lft.bank_account_id, lft.amount, lft.purpose, lft.remarks, lft.created_at,
		mb.name, mb.location, mb.image_url
	FROM load_fund_transactions lft
	JOIN bank_accounts ba ON ba.id = lft.bank_account_id
	JOIN mock_banks mb ON mb.id = ba.bank_id`

func InsertLoadFundTransaction(ctx context.Context, q sqlx.QueryerContext, t *models.LoadFundTransaction) (int64, error) {
	var id int64
	err := q.QueryRowxContext(ctx, `
		INSERT INTO load_fund_transactions (type, user_id, bank_account_id, amount, purpose, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		t.Type, t.UserID, t.BankAccountID, t.Amount, t.Purpose, t.Remarks).Scan(&id)
	return id, err
}

func ListLoadFundTransactions(ctx context.Context, q sqlx.QueryerContext, userID int64) ([]models.LoadFundTransaction, error) {
	txns := []models.LoadFundTransaction{}
	err := sqlx.SelectContext(ctx, q, &txns, loadFundSelect+` WHERE lft.user_id = $1 ORDER BY lft.created_at DESC`, userID)
	return txns, err
}

func GetLoadFundTransaction(ctx context.Context, q sqlx.QueryerContext, userID, id int64) (*models.LoadFundTransaction, error) {
	var txn models.LoadFundTransaction
	err := sqlx.GetContext(ctx, q, &txn, loadFundSelect+` WHERE lft.id = $1 AND lft.user_id = $2`, id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &txn, nil
}
