package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ruralpay/wallet/internal/logger"
	"github.com/ruralpay/wallet/internal/metrics"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/sirupsen/logrus"
)

type LoadBalanceRequest struct {
	BankAccountID int64  `json:"bankAccountId" validate:"required,gte=1"`
	Amount        int64  `json:"amount" validate:"required,gte=1"`
	Purpose       string `json:"purpose" validate:"required,max=100"`
	Remarks       string `json:"remarks" validate:"required,max=255"`
}

type TransferBalanceRequest struct {
	SenderUserID  int64  `json:"-"`
	ReceiverEmail string `json:"receiverEmail" validate:"required,email"`
	Amount        int64  `json:"amount" validate:"required,gte=1"`
	Purpose       string `json:"purpose" validate:"required,max=100"`
	Remarks       string `json:"remarks" validate:"required,max=50"`
}

// Result is the body returned for a successful balance operation.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type Notifier interface {
	Notify(ctx context.Context, notifications ...models.Notification)
}

type Auditor interface {
	LogLoad(userID, bankAccountID, transactionID, amount int64)
	LogTransfer(senderID, receiverID, statementID, amount int64)
	LogError(operation string, userID int64, err error)
}

type BalanceService struct {
	ledger   *LedgerService
	notifier Notifier
	audit    Auditor
}

func NewBalanceService(ledger *LedgerService, notifier Notifier, audit Auditor) *BalanceService {
	return &BalanceService{
		ledger:   ledger,
		notifier: notifier,
		audit:    audit,
	}
}

func (s *BalanceService) LoadBalance(ctx context.Context, userID int64, req LoadBalanceRequest) (*Result, error) {
	if req.Amount < 1 {
		return nil, ErrInvalidAmount
	}

	res, err := s.ledger.Load(ctx, userID, req)
	if err != nil {
		s.fail("load", userID, err)
		return nil, err
	}

	metrics.RecordBalanceOperation("load", "success")
	metrics.RecordAmountMoved("load", req.Amount)
	s.audit.LogLoad(userID, res.BankAccount.ID, res.TransactionID, req.Amount)
	logger.WithUser(userID).WithFields(logrus.Fields{
		"bank_account_id": res.BankAccount.ID,
		"amount":          req.Amount,
	}).Info("[BALANCE] loaded from bank account")

	s.notifier.Notify(ctx, models.Notification{
		UserID:  userID,
		Message: fmt.Sprintf("You loaded Rs.%d from your %s account.", req.Amount, res.BankAccount.BankName),
		Type:    models.NotificationTypeLoadBalance,
		DataID:  res.TransactionID,
	})

	return &Result{
		StatusCode: http.StatusOK,
		Message:    fmt.Sprintf("You've successfully loaded Rs.%d.", req.Amount),
	}, nil
}

func (s *BalanceService) TransferBalance(ctx context.Context, req TransferBalanceRequest) (*Result, error) {
	if req.Amount < 1 {
		return nil, ErrInvalidAmount
	}

	res, err := s.ledger.Transfer(ctx, req)
	if err != nil {
		s.fail("transfer", req.SenderUserID, err)
		return nil, err
	}

	st := res.Statement
	metrics.RecordBalanceOperation("transfer", "success")
	metrics.RecordAmountMoved("transfer", st.Amount)
	s.audit.LogTransfer(st.SenderUserID, st.ReceiverUserID, st.ID, st.Amount)
	logger.WithUser(st.SenderUserID).WithFields(logrus.Fields{
		"receiver_id":  st.ReceiverUserID,
		"statement_id": st.ID,
		"amount":       st.Amount,
	}).Info("[BALANCE] transfer committed")

	s.notifier.Notify(ctx,
		models.Notification{
			UserID:  st.SenderUserID,
			Message: fmt.Sprintf("You sent Rs.%d to %s.", st.Amount, st.ReceiverUsername),
			Type:    models.NotificationTypeBalanceTransfer,
			DataID:  st.ID,
		},
		models.Notification{
			UserID:  st.ReceiverUserID,
			Message: fmt.Sprintf("You received Rs.%d from %s.", st.Amount, st.SenderUsername),
			Type:    models.NotificationTypeBalanceTransfer,
			DataID:  st.ID,
		},
	)

	return &Result{
		StatusCode: http.StatusOK,
		Message:    "Balance transferred successfully.",
	}, nil
}

func (s *BalanceService) fail(operation string, userID int64, err error) {
	var se *ServiceError
	if errors.As(err, &se) {
		metrics.RecordBalanceOperation(operation, "rejected")
		logger.WithUser(userID).WithField("reason", se.Message).Infof("[BALANCE] %s rejected", operation)
		return
	}

	metrics.RecordBalanceOperation(operation, "error")
	logger.WithUser(userID).WithError(err).Errorf("[BALANCE] %s failed", operation)
	s.audit.LogError(operation, userID, err)
}
