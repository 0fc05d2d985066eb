package handlers

import (
	"context"
	"net/http"

	"github.com/ruralpay/wallet/internal/services"
)

type BankAccountReader interface {
	FetchBankAccounts(ctx context.Context, userID int64) (*services.BankAccountsResponse, error)
}

type BankAccountHandler struct {
	service BankAccountReader
}

func NewBankAccountHandler(service BankAccountReader) *BankAccountHandler {
	return &BankAccountHandler{service: service}
}

// BankAccounts lists the caller's linked bank accounts
// @Summary List linked bank accounts
// @Tags Bank Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.BankAccountsResponse
// @Failure 404 {object} services.Result
// @Router /bank-accounts [get]
func (h *BankAccountHandler) BankAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.FetchBankAccounts(r.Context(), userID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "private, max-age=60")
	services.SendJSON(w, http.StatusOK, res)
}
