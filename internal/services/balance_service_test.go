package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow       = time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)
	userColumns    = []string{"id", "username", "email", "balance", "role", "is_verified", "created_at"}
	accountColumns = []string{"id", "user_id", "bank_id", "amount", "created_at", "name", "location", "image_url", "est_date"}
)

type testUser struct {
	id       int64
	name     string
	balance  int64
	verified bool
}

func (u testUser) email() string { return u.name + "@example.com" }

func (u testUser) rows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(u.id, u.name, u.email(), u.balance, "user", u.verified, fixedNow)
}

type balanceFixture struct {
	mock     sqlmock.Sqlmock
	ledger   *LedgerService
	service  *BalanceService
	notifier *MockNotifier
	audit    *MockAuditor
}

func newBalanceFixture(t *testing.T) *balanceFixture {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ledger := NewLedgerService(sqlx.NewDb(db, "postgres"), 10)
	ledger.now = func() time.Time { return fixedNow }

	notifier := &MockNotifier{}
	audit := &MockAuditor{}
	return &balanceFixture{
		mock:     sqlMock,
		ledger:   ledger,
		service:  NewBalanceService(ledger, notifier, audit),
		notifier: notifier,
		audit:    audit,
	}
}

func (f *balanceFixture) expectGetUser(u testUser) {
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).WithArgs(u.id).WillReturnRows(u.rows())
}

func (f *balanceFixture) expectLimit(userID int64, remaining int) {
	f.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transaction_limits")).
		WithArgs(userID, "2024-07", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery(regexp.QuoteMeta("AND date = $2 FOR UPDATE")).
		WithArgs(userID, "2024-07").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "date", "limit"}).AddRow(userID, "2024-07", remaining))
}

func (f *balanceFixture) expectGetByEmail(u testUser) {
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).WithArgs(u.email()).WillReturnRows(u.rows())
}

func (f *balanceFixture) expectLock(u testUser) {
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 FOR UPDATE")).WithArgs(u.id).WillReturnRows(u.rows())
}

func (f *balanceFixture) expectMove(sender, receiver testUser, amount int64) {
	f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance - $1")).
		WithArgs(amount, sender.id).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(sender.balance - amount))
	f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance + $1")).
		WithArgs(amount, receiver.id).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(receiver.balance + amount))
}

func (f *balanceFixture) expectStatement(sender, receiver testUser, amount, id int64) {
	f.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balance_transfer_statements")).
		WithArgs(sender.id, receiver.id, amount, "Personal Use", "rent",
			sender.name, receiver.name, sender.balance-amount, receiver.balance+amount, fixedNow.UnixMilli()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
}

func transferRequest(sender, receiver testUser, amount int64) TransferBalanceRequest {
	return TransferBalanceRequest{
		SenderUserID:  sender.id,
		ReceiverEmail: receiver.email(),
		Amount:        amount,
		Purpose:       "Personal Use",
		Remarks:       "rent",
	}
}

func TestBalanceService_TransferBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("unverified sender moves funds and spends one transfer", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectLimit(alice.id, 10)
		f.expectGetByEmail(bob)
		f.expectLock(alice)
		f.expectLock(bob)
		f.expectMove(alice, bob, 300)
		f.expectStatement(alice, bob, 300, 5)
		f.mock.ExpectExec(regexp.QuoteMeta(`UPDATE transaction_limits SET "limit" = $1`)).
			WithArgs(9, alice.id, "2024-07", 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		f.audit.On("LogTransfer", int64(1), int64(2), int64(5), int64(300)).Return()
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ns []models.Notification) bool {
			return len(ns) == 2 &&
				ns[0].UserID == 1 && ns[0].Message == "You sent Rs.300 to bob." &&
				ns[1].UserID == 2 && ns[1].Message == "You received Rs.300 from alice." &&
				ns[0].DataID == 5 && ns[1].DataID == 5 &&
				ns[0].Type == models.NotificationTypeBalanceTransfer
		})).Return()

		res, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 300))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Balance transferred successfully.", res.Message)

		assert.NoError(t, f.mock.ExpectationsWereMet())
		f.notifier.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("verified sender never touches the limit", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000, verified: true}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectGetByEmail(bob)
		f.expectLock(alice)
		f.expectLock(bob)
		f.expectMove(alice, bob, 300)
		f.expectStatement(alice, bob, 300, 6)
		f.mock.ExpectCommit()

		f.audit.On("LogTransfer", int64(1), int64(2), int64(6), int64(300)).Return()
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return()

		_, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 300))
		require.NoError(t, err)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("locks rows in ascending id order", func(t *testing.T) {
		f := newBalanceFixture(t)
		carol := testUser{id: 5, name: "carol", balance: 800, verified: true}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(carol)
		f.expectGetByEmail(bob)
		f.expectLock(bob)
		f.expectLock(carol)
		f.expectMove(carol, bob, 100)
		f.expectStatement(carol, bob, 100, 7)
		f.mock.ExpectCommit()

		f.audit.On("LogTransfer", int64(5), int64(2), int64(7), int64(100)).Return()
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return()

		_, err := f.service.TransferBalance(ctx, transferRequest(carol, bob, 100))
		require.NoError(t, err)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 100, verified: true}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectGetByEmail(bob)
		f.expectLock(alice)
		f.expectLock(bob)
		f.mock.ExpectRollback()

		_, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 150))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.NoError(t, f.mock.ExpectationsWereMet())
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("guarded debit matching no row is insufficient balance", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000, verified: true}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectGetByEmail(bob)
		f.expectLock(alice)
		f.expectLock(bob)
		f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance - $1")).
			WithArgs(int64(300), alice.id).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))
		f.mock.ExpectRollback()

		res, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 300))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		_, msg := StatusAndMessage(err)
		assert.Equal(t, "You do not have enough balance to transfer.", msg)
		assert.NoError(t, f.mock.ExpectationsWereMet())
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("statement insert failure rolls back the moved funds", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000}
		bob := testUser{id: 2, name: "bob", balance: 200}
		dbErr := errors.New("statement insert failed")

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectLimit(alice.id, 10)
		f.expectGetByEmail(bob)
		f.expectLock(alice)
		f.expectLock(bob)
		f.expectMove(alice, bob, 300)
		f.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balance_transfer_statements")).WillReturnError(dbErr)
		f.mock.ExpectRollback()

		f.audit.On("LogError", "transfer", int64(1), mock.Anything).Return()

		res, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 300))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, dbErr)

		code, _ := StatusAndMessage(err)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.NoError(t, f.mock.ExpectationsWereMet())
		f.audit.AssertExpectations(t)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("a new month starts a fresh allowance", func(t *testing.T) {
		f := newBalanceFixture(t)
		nextMonth := time.Date(2024, 8, 1, 0, 0, 1, 0, time.UTC)
		f.ledger.now = func() time.Time { return nextMonth }
		alice := testUser{id: 1, name: "alice", balance: 1000}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transaction_limits")).
			WithArgs(alice.id, "2024-08", 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectQuery(regexp.QuoteMeta("AND date = $2 FOR UPDATE")).
			WithArgs(alice.id, "2024-08").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "date", "limit"}).AddRow(alice.id, "2024-08", 10))
		f.expectGetByEmail(bob)
		f.expectLock(alice)
		f.expectLock(bob)
		f.expectMove(alice, bob, 50)
		f.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balance_transfer_statements")).
			WithArgs(alice.id, bob.id, int64(50), "Personal Use", "rent",
				"alice", "bob", int64(950), int64(250), nextMonth.UnixMilli()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
		f.mock.ExpectExec(regexp.QuoteMeta(`UPDATE transaction_limits SET "limit" = $1`)).
			WithArgs(9, alice.id, "2024-08", 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		f.audit.On("LogTransfer", int64(1), int64(2), int64(8), int64(50)).Return()
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return()

		res, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 50))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("self transfer", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectLimit(alice.id, 4)
		f.expectGetByEmail(alice)
		f.mock.ExpectRollback()

		_, err := f.service.TransferBalance(ctx, transferRequest(alice, alice, 50))
		assert.ErrorIs(t, err, ErrSelfTransfer)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("eleventh transfer of the month is rejected", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000}
		bob := testUser{id: 2, name: "bob", balance: 200}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.expectLimit(alice.id, 0)
		f.mock.ExpectRollback()

		_, err := f.service.TransferBalance(ctx, transferRequest(alice, bob, 10))
		assert.ErrorIs(t, err, ErrTransactionLimitReached)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("unknown receiver", func(t *testing.T) {
		f := newBalanceFixture(t)
		alice := testUser{id: 1, name: "alice", balance: 1000, verified: true}

		f.mock.ExpectBegin()
		f.expectGetUser(alice)
		f.mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))
		f.mock.ExpectRollback()

		req := TransferBalanceRequest{SenderUserID: 1, ReceiverEmail: "ghost@example.com", Amount: 10, Purpose: "Personal Use", Remarks: "rent"}
		_, err := f.service.TransferBalance(ctx, req)
		assert.ErrorIs(t, err, ErrReceiverNotFound)

		code, msg := StatusAndMessage(err)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "No user found with associated email.", msg)
	})

	t.Run("zero amount never reaches the database", func(t *testing.T) {
		f := newBalanceFixture(t)

		_, err := f.service.TransferBalance(ctx, TransferBalanceRequest{SenderUserID: 1, ReceiverEmail: "bob@example.com"})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("database failure is audited and hidden", func(t *testing.T) {
		f := newBalanceFixture(t)
		dbErr := errors.New("connection reset")

		f.mock.ExpectBegin().WillReturnError(dbErr)
		f.audit.On("LogError", "transfer", int64(1), mock.Anything).Return()

		_, err := f.service.TransferBalance(ctx, transferRequest(testUser{id: 1, name: "alice"}, testUser{id: 2, name: "bob"}, 10))
		assert.ErrorIs(t, err, dbErr)

		code, _ := StatusAndMessage(err)
		assert.Equal(t, http.StatusInternalServerError, code)
		f.audit.AssertExpectations(t)
	})
}

func TestBalanceService_LoadBalance(t *testing.T) {
	ctx := context.Background()
	alice := testUser{id: 1, name: "alice", balance: 0}

	expectAccount := func(f *balanceFixture, amount int64) {
		f.mock.ExpectQuery(regexp.QuoteMeta("WHERE ba.id = $1 AND ba.user_id = $2 FOR UPDATE OF ba")).
			WithArgs(int64(4), alice.id).
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(4, alice.id, 2, amount, fixedNow, "Nabil Bank", "Kathmandu", "nabil.png", "1984"))
	}

	t.Run("moves funds from the bank account", func(t *testing.T) {
		f := newBalanceFixture(t)

		f.mock.ExpectBegin()
		expectAccount(f, 5000)
		f.expectLock(alice)
		f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE bank_accounts SET amount = amount - $1")).
			WithArgs(int64(2000), int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(3000))
		f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance + $1")).
			WithArgs(int64(2000), alice.id).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(2000))
		f.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO load_fund_transactions")).
			WithArgs("Debit", alice.id, int64(4), int64(2000), "Savings", "topup").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		f.mock.ExpectCommit()

		f.audit.On("LogLoad", int64(1), int64(4), int64(11), int64(2000)).Return()
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ns []models.Notification) bool {
			return len(ns) == 1 && ns[0].DataID == 11 && ns[0].Type == models.NotificationTypeLoadBalance
		})).Return()

		res, err := f.service.LoadBalance(ctx, alice.id, LoadBalanceRequest{BankAccountID: 4, Amount: 2000, Purpose: "Savings", Remarks: "topup"})
		require.NoError(t, err)
		assert.Equal(t, "You've successfully loaded Rs.2000.", res.Message)
		assert.NoError(t, f.mock.ExpectationsWereMet())
		f.notifier.AssertExpectations(t)
	})

	t.Run("amount above bank funds", func(t *testing.T) {
		f := newBalanceFixture(t)

		f.mock.ExpectBegin()
		expectAccount(f, 5000)
		f.expectLock(alice)
		f.mock.ExpectRollback()

		_, err := f.service.LoadBalance(ctx, alice.id, LoadBalanceRequest{BankAccountID: 4, Amount: 6000, Purpose: "Savings", Remarks: "topup"})
		assert.ErrorIs(t, err, ErrInsufficientBankFunds)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("missing user row", func(t *testing.T) {
		f := newBalanceFixture(t)

		f.mock.ExpectBegin()
		expectAccount(f, 5000)
		f.mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 FOR UPDATE")).
			WithArgs(alice.id).
			WillReturnRows(sqlmock.NewRows(userColumns))
		f.mock.ExpectRollback()

		_, err := f.service.LoadBalance(ctx, alice.id, LoadBalanceRequest{BankAccountID: 4, Amount: 10, Purpose: "Savings", Remarks: "topup"})
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("load record failure rolls back the bank debit", func(t *testing.T) {
		f := newBalanceFixture(t)
		dbErr := errors.New("insert failed")

		f.mock.ExpectBegin()
		expectAccount(f, 5000)
		f.expectLock(alice)
		f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE bank_accounts SET amount = amount - $1")).
			WithArgs(int64(2000), int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(3000))
		f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = balance + $1")).
			WithArgs(int64(2000), alice.id).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(2000))
		f.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO load_fund_transactions")).WillReturnError(dbErr)
		f.mock.ExpectRollback()

		f.audit.On("LogError", "load", alice.id, mock.Anything).Return()

		res, err := f.service.LoadBalance(ctx, alice.id, LoadBalanceRequest{BankAccountID: 4, Amount: 2000, Purpose: "Savings", Remarks: "topup"})
		assert.Nil(t, res)
		assert.ErrorIs(t, err, dbErr)

		code, _ := StatusAndMessage(err)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.NoError(t, f.mock.ExpectationsWereMet())
		f.audit.AssertExpectations(t)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("account not linked to user", func(t *testing.T) {
		f := newBalanceFixture(t)

		f.mock.ExpectBegin()
		f.mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF ba")).
			WithArgs(int64(4), alice.id).
			WillReturnRows(sqlmock.NewRows(accountColumns))
		f.mock.ExpectRollback()

		_, err := f.service.LoadBalance(ctx, alice.id, LoadBalanceRequest{BankAccountID: 4, Amount: 10, Purpose: "Savings", Remarks: "topup"})
		assert.ErrorIs(t, err, ErrBankAccountNotFound)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})
}
