package models

import "time"

const (
	NotificationTypeBalanceTransfer = "Balance Transfer"
	NotificationTypeLoadBalance     = "Load Balance"
)

type Notification struct {
	ID        int64     `json:"id,omitempty" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	DataID    int64     `json:"dataId" db:"data_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
