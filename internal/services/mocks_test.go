package services

import (
	"context"

	"github.com/ruralpay/wallet/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notifications ...models.Notification) {
	m.Called(ctx, notifications)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) LogLoad(userID, bankAccountID, transactionID, amount int64) {
	m.Called(userID, bankAccountID, transactionID, amount)
}

func (m *MockAuditor) LogTransfer(senderID, receiverID, statementID, amount int64) {
	m.Called(senderID, receiverID, statementID, amount)
}

func (m *MockAuditor) LogError(operation string, userID int64, err error) {
	m.Called(operation, userID, err)
}
