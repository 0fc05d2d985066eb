package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/ruralpay/wallet/internal/store"
)

// LedgerService runs the money-moving database transactions. Each call either
// commits every row it touches or none of them.
type LedgerService struct {
	db           *sqlx.DB
	monthlyLimit int
	now          func() time.Time
}

func NewLedgerService(db *sqlx.DB, monthlyLimit int) *LedgerService {
	return &LedgerService{
		db:           db,
		monthlyLimit: monthlyLimit,
		now:          time.Now,
	}
}

type LoadResult struct {
	BankAccount   *models.BankAccount
	TransactionID int64
	Balance       int64
}

type TransferResult struct {
	Statement models.BalanceTransferStatement
}

// Load moves req.Amount from the user's linked bank account into their balance.
func (s *LedgerService) Load(ctx context.Context, userID int64, req LoadBalanceRequest) (*LoadResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	account, err := store.GetBankAccountForUpdate(ctx, tx, req.BankAccountID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBankAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock bank account: %w", err)
	}

	if _, err := store.LockUser(ctx, tx, userID); errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	if req.Amount > account.Amount {
		return nil, ErrInsufficientBankFunds
	}

	remaining, err := store.DebitBankAccount(ctx, tx, account.ID, req.Amount)
	if errors.Is(err, store.ErrConditionFailed) {
		return nil, ErrInsufficientBankFunds
	}
	if err != nil {
		return nil, fmt.Errorf("debit bank account: %w", err)
	}
	account.Amount = remaining

	balance, err := store.CreditUserBalance(ctx, tx, userID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("credit user: %w", err)
	}

	txnID, err := store.InsertLoadFundTransaction(ctx, tx, &models.LoadFundTransaction{
		Type:          models.TransactionTypeDebit,
		UserID:        userID,
		BankAccountID: account.ID,
		Amount:        req.Amount,
		Purpose:       req.Purpose,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return nil, fmt.Errorf("insert load fund transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit load: %w", err)
	}

	return &LoadResult{BankAccount: account, TransactionID: txnID, Balance: balance}, nil
}

// Transfer moves req.Amount between two wallet balances and records the statement.
// Unverified senders consume one unit of the month's allowance per transfer.
func (s *LedgerService) Transfer(ctx context.Context, req TransferBalanceRequest) (*TransferResult, error) {
	now := s.now()
	month := models.MonthKey(now)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback()

	sender, err := store.GetUserByID(ctx, tx, req.SenderUserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sender: %w", err)
	}

	var limit *models.TransactionLimit
	if !sender.IsVerified {
		limit, err = s.lockMonthlyLimit(ctx, tx, sender.ID, month)
		if err != nil {
			return nil, err
		}
		if limit.Limit <= 0 {
			return nil, ErrTransactionLimitReached
		}
	}

	receiver, err := store.GetUserByEmail(ctx, tx, req.ReceiverEmail)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReceiverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get receiver: %w", err)
	}

	if receiver.ID == sender.ID {
		return nil, ErrSelfTransfer
	}

	// Lock users in ascending id order so opposite transfers cannot deadlock
	first, second := sender.ID, receiver.ID
	if first > second {
		first, second = second, first
	}
	locked := make(map[int64]*models.User, 2)
	for _, id := range []int64{first, second} {
		user, err := store.LockUser(ctx, tx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("lock user %d: %w", id, err)
		}
		locked[id] = user
	}
	sender, receiver = locked[sender.ID], locked[receiver.ID]

	if sender.Balance < req.Amount {
		return nil, ErrInsufficientBalance
	}

	senderBalance, err := store.DebitUserBalance(ctx, tx, sender.ID, req.Amount)
	if errors.Is(err, store.ErrConditionFailed) {
		return nil, ErrInsufficientBalance
	}
	if err != nil {
		return nil, fmt.Errorf("debit sender: %w", err)
	}

	receiverBalance, err := store.CreditUserBalance(ctx, tx, receiver.ID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("credit receiver: %w", err)
	}

	statement := models.BalanceTransferStatement{
		SenderUserID:         sender.ID,
		ReceiverUserID:       receiver.ID,
		Amount:               req.Amount,
		Purpose:              req.Purpose,
		Remarks:              req.Remarks,
		SenderUsername:       sender.Username,
		ReceiverUsername:     receiver.Username,
		SenderTotalBalance:   senderBalance,
		ReceiverTotalBalance: receiverBalance,
		CreatedAt:            now.UnixMilli(),
	}
	statement.ID, err = store.InsertBalanceTransferStatement(ctx, tx, &statement)
	if err != nil {
		return nil, fmt.Errorf("insert statement: %w", err)
	}

	if limit != nil {
		if err := store.DecrementTransactionLimit(ctx, tx, sender.ID, month, limit.Limit); err != nil {
			return nil, fmt.Errorf("decrement limit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	return &TransferResult{Statement: statement}, nil
}

// lockMonthlyLimit returns the sender's row for month, creating it with the
// full allowance first if this is the first transfer of the month.
func (s *LedgerService) lockMonthlyLimit(ctx context.Context, tx *sqlx.Tx, userID int64, month string) (*models.TransactionLimit, error) {
	if err := store.CreateTransactionLimit(ctx, tx, userID, month, s.monthlyLimit); err != nil {
		return nil, fmt.Errorf("create transaction limit: %w", err)
	}

	limit, err := store.FetchTransactionLimitForUpdate(ctx, tx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("lock transaction limit: %w", err)
	}
	return limit, nil
}
