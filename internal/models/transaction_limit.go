package models

import "time"

// TransactionLimit is the remaining transfer allowance of an unverified user for one month.
type TransactionLimit struct {
	UserID int64  `json:"userId" db:"user_id"`
	Date   string `json:"date" db:"date"` // YYYY-MM
	Limit  int    `json:"limit" db:"limit"`
}

// MonthKey returns the YYYY-MM key of t in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
