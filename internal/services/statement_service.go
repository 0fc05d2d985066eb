package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/ruralpay/wallet/internal/store"
)

type StatementQuery struct {
	Page      int             `validate:"required,gte=1,lte=10000"`
	Size      int             `validate:"required,gte=1,lte=100"`
	CashFlow  models.CashFlow `validate:"required,oneof=All Debit Credit"`
	StartDate *int64
	EndDate   *int64
}

type StatementsResponse struct {
	StatusCode int                               `json:"statusCode"`
	Message    string                            `json:"message"`
	Statements []models.BalanceTransferStatement `json:"statements"`
	TotalCount int64                             `json:"totalCount"`
}

type LoadFundTransactionsResponse struct {
	StatusCode   int                          `json:"statusCode"`
	Message      string                       `json:"message"`
	Transactions []models.LoadFundTransaction `json:"transactions"`
}

type LoadFundTransactionResponse struct {
	StatusCode  int                         `json:"statusCode"`
	Message     string                      `json:"message"`
	Transaction *models.LoadFundTransaction `json:"transaction"`
}

type StatementService struct {
	db *sqlx.DB
}

func NewStatementService(db *sqlx.DB) *StatementService {
	return &StatementService{db: db}
}

func (s *StatementService) FetchLoadFundTransactions(ctx context.Context, userID int64) (*LoadFundTransactionsResponse, error) {
	txns, err := store.ListLoadFundTransactions(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, ErrNoLoadFunds
	}
	return &LoadFundTransactionsResponse{
		StatusCode:   http.StatusOK,
		Message:      "Load fund transactions fetched successfully.",
		Transactions: txns,
	}, nil
}

func (s *StatementService) FetchLoadFundTransaction(ctx context.Context, userID, id int64) (*LoadFundTransactionResponse, error) {
	txn, err := store.GetLoadFundTransaction(ctx, s.db, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &LoadFundTransactionResponse{
		StatusCode:  http.StatusOK,
		Message:     "Transaction fetched successfully.",
		Transaction: txn,
	}, nil
}

// FetchBalanceTransferStatements returns one page of the user's transfers,
// each labelled Credit or Debit from the user's side.
func (s *StatementService) FetchBalanceTransferStatements(ctx context.Context, userID int64, q StatementQuery) (*StatementsResponse, error) {
	filter := store.StatementFilter{
		UserID:    userID,
		CashFlow:  q.CashFlow,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Limit:     q.Size,
		Offset:    (q.Page - 1) * q.Size,
	}

	statements, err := store.ListBalanceTransferStatements(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if len(statements) == 0 {
		return nil, ErrStatementsNotFound
	}

	total, err := store.CountBalanceTransferStatements(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	for i := range statements {
		statements[i] = statements[i].ForViewer(userID)
	}

	return &StatementsResponse{
		StatusCode: http.StatusOK,
		Message:    "Statements fetched successfully.",
		Statements: statements,
		TotalCount: total,
	}, nil
}
