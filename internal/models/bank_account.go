package models

import "time"

// BankAccount is a linked mock bank account together with its bank's display metadata.
type BankAccount struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	BankID    int64     `json:"bankId" db:"bank_id"`
	Amount    int64     `json:"amount" db:"amount"`
	BankName  string    `json:"name" db:"name"`
	Location  string    `json:"location" db:"location"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	EstDate   string    `json:"estDate" db:"est_date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
