package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
)

// StatementFilter selects balance transfer statements visible to UserID.
type StatementFilter struct {
	UserID    int64
	CashFlow  models.CashFlow
	StartDate *int64
	EndDate   *int64
	Limit     int
	Offset    int
}

func (f StatementFilter) where() (string, []any) {
	var conds []string
	args := []any{f.UserID}

	switch f.CashFlow {
	case models.CashFlowCredit:
		conds = append(conds, "sender_user_id = $1")
	case models.CashFlowDebit:
		conds = append(conds, "receiver_user_id = $1")
	default:
		conds = append(conds, "(sender_user_id = $1 OR receiver_user_id = $1)")
	}

	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func InsertBalanceTransferStatement(ctx context.Context, q sqlx.QueryerContext, s *models.BalanceTransferStatement) (int64, error) {
	var id int64
	err := q.QueryRowxContext(ctx, `
		INSERT INTO balance_transfer_statements (
			sender_user_id, receiver_user_id, amount, purpose, remarks,
			sender_username, receiver_username, sender_total_balance, receiver_total_balance, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		s.SenderUserID, s.ReceiverUserID, s.Amount, s.Purpose, s.Remarks,
		s.SenderUsername, s.ReceiverUsername, s.SenderTotalBalance, s.ReceiverTotalBalance, s.CreatedAt,
	).Scan(&id)
	return id, err
}

func ListBalanceTransferStatements(ctx context.Context, q sqlx.QueryerContext, f StatementFilter) ([]models.BalanceTransferStatement, error) {
	where, args := f.where()
	args = append(args, f.Limit, f.Offset)
	query := `
		SELECT id, sender_user_id, receiver_user_id, amount, purpose, remarks,
			sender_username, receiver_username, sender_total_balance, receiver_total_balance, created_at
		FROM balance_transfer_statements` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	statements := []models.BalanceTransferStatement{}
	err := sqlx.SelectContext(ctx, q, &statements, query, args...)
	return statements, err
}

func CountBalanceTransferStatements(ctx context.Context, q sqlx.QueryerContext, f StatementFilter) (int64, error) {
	where, args := f.where()
	var total int64
	err := sqlx.GetContext(ctx, q, &total, `SELECT COUNT(*) FROM balance_transfer_statements`+where, args...)
	return total, err
}
