package handlers

import (
	"context"

	"github.com/ruralpay/wallet/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockBalanceOperator struct {
	mock.Mock
}

func (m *MockBalanceOperator) LoadBalance(ctx context.Context, userID int64, req services.LoadBalanceRequest) (*services.Result, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Result), args.Error(1)
}

func (m *MockBalanceOperator) TransferBalance(ctx context.Context, req services.TransferBalanceRequest) (*services.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Result), args.Error(1)
}

type MockStatementReader struct {
	mock.Mock
}

func (m *MockStatementReader) FetchLoadFundTransactions(ctx context.Context, userID int64) (*services.LoadFundTransactionsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoadFundTransactionsResponse), args.Error(1)
}

func (m *MockStatementReader) FetchLoadFundTransaction(ctx context.Context, userID, id int64) (*services.LoadFundTransactionResponse, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoadFundTransactionResponse), args.Error(1)
}

func (m *MockStatementReader) FetchBalanceTransferStatements(ctx context.Context, userID int64, q services.StatementQuery) (*services.StatementsResponse, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StatementsResponse), args.Error(1)
}

type MockNotificationReader struct {
	mock.Mock
}

func (m *MockNotificationReader) FetchNotifications(ctx context.Context, userID int64, page, size int) (*services.NotificationsResponse, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.NotificationsResponse), args.Error(1)
}

type MockBankAccountReader struct {
	mock.Mock
}

func (m *MockBankAccountReader) FetchBankAccounts(ctx context.Context, userID int64) (*services.BankAccountsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BankAccountsResponse), args.Error(1)
}
