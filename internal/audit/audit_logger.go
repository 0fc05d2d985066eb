package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuditEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Details   any       `json:"details"`
}

// AuditLogger writes one structured entry per money movement.
type AuditLogger struct {
	log *logrus.Logger
}

func NewAuditLogger(log *logrus.Logger) *AuditLogger {
	return &AuditLogger{log: log}
}

func (a *AuditLogger) LogLoad(userID, bankAccountID, transactionID, amount int64) {
	a.write(AuditEvent{
		EventType: "LOAD",
		UserID:    userID,
		Amount:    amount,
		Status:    "SUCCESS",
		Details: map[string]int64{
			"bank_account_id": bankAccountID,
			"transaction_id":  transactionID,
		},
	})
}

func (a *AuditLogger) LogTransfer(senderID, receiverID, statementID, amount int64) {
	a.write(AuditEvent{
		EventType: "TRANSFER",
		UserID:    senderID,
		Amount:    amount,
		Status:    "SUCCESS",
		Details: map[string]int64{
			"receiver_id":  receiverID,
			"statement_id": statementID,
		},
	})
}

func (a *AuditLogger) LogError(operation string, userID int64, err error) {
	a.write(AuditEvent{
		EventType: "ERROR",
		UserID:    userID,
		Status:    "FAILED",
		Details:   map[string]string{"operation": operation, "error": err.Error()},
	})
}

func (a *AuditLogger) write(event AuditEvent) {
	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().UTC()

	a.log.WithFields(logrus.Fields{
		"audit":      true,
		"event_id":   event.EventID,
		"event_type": event.EventType,
		"user_id":    event.UserID,
		"amount":     event.Amount,
		"status":     event.Status,
		"details":    event.Details,
	}).Info("AUDIT")
}
