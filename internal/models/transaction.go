package models

import "time"

const TransactionTypeDebit = "Debit"

// LoadFundTransaction is the append-only record of a bank account to wallet load.
type LoadFundTransaction struct {
	ID            int64     `json:"id" db:"id"`
	Type          string    `json:"type" db:"type"`
	UserID        int64     `json:"userId" db:"user_id"`
	BankAccountID int64     `json:"bankAccountId" db:"bank_account_id"`
	Amount        int64     `json:"amount" db:"amount"`
	Purpose       string    `json:"purpose" db:"purpose"`
	Remarks       string    `json:"remarks" db:"remarks"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	BankName string `json:"name,omitempty" db:"name"`
	Location string `json:"location,omitempty" db:"location"`
	ImageURL string `json:"imageUrl,omitempty" db:"image_url"`
}
