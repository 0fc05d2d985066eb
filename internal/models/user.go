package models

import "time"

// User is a wallet holder. Balance is kept in the smallest currency unit.
type User struct {
	ID         int64     `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	Balance    int64     `json:"balance" db:"balance"`
	Role       string    `json:"role" db:"role"`
	IsVerified bool      `json:"isVerified" db:"is_verified"` // KYC approved
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
