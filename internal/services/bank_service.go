package services

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/ruralpay/wallet/internal/store"
)

// BankImagePrefix is where StaticFileServer exposes the bank images.
const BankImagePrefix = "/static/banks/"

type BankAccountsResponse struct {
	StatusCode int                  `json:"statusCode"`
	Message    string               `json:"message"`
	Accounts   []models.BankAccount `json:"accounts"`
}

type BankAccountService struct {
	db *sqlx.DB
}

func NewBankAccountService(db *sqlx.DB) *BankAccountService {
	return &BankAccountService{db: db}
}

func (bs *BankAccountService) FetchBankAccounts(ctx context.Context, userID int64) (*BankAccountsResponse, error) {
	accounts, err := store.ListBankAccounts(ctx, bs.db, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrBankAccountsNotFound
	}

	for i := range accounts {
		accounts[i].ImageURL = imageURL(accounts[i].ImageURL)
	}

	return &BankAccountsResponse{
		StatusCode: http.StatusOK,
		Message:    "Linked accounts fetched successfully.",
		Accounts:   accounts,
	}, nil
}

// imageURL turns a stored file name into a path under BankImagePrefix.
// Absolute URLs are returned unchanged.
func imageURL(stored string) string {
	if stored == "" || strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored
	}
	return BankImagePrefix + path.Base(stored)
}
