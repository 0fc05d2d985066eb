package handlers

import (
	"context"
	"net/http"

	"github.com/ruralpay/wallet/internal/services"
)

type BalanceOperator interface {
	LoadBalance(ctx context.Context, userID int64, req services.LoadBalanceRequest) (*services.Result, error)
	TransferBalance(ctx context.Context, req services.TransferBalanceRequest) (*services.Result, error)
}

type BalanceHandler struct {
	service   BalanceOperator
	validator *services.ValidationHelper
}

func NewBalanceHandler(service BalanceOperator) *BalanceHandler {
	return &BalanceHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// LoadBalance moves funds from a linked bank account into the wallet
// @Summary Load balance
// @Description Load wallet balance from one of the caller's linked bank accounts
// @Tags Balance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.LoadBalanceRequest true "Load request"
// @Success 200 {object} services.Result
// @Failure 400 {object} services.Result
// @Failure 404 {object} services.Result
// @Router /balance/load [patch]
func (h *BalanceHandler) LoadBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req services.LoadBalanceRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	res, err := h.service.LoadBalance(r.Context(), userID, req)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, res.StatusCode, res)
}

// TransferBalance sends wallet funds to another user by email
// @Summary Transfer balance
// @Description Transfer wallet balance to the user owning receiverEmail
// @Tags Balance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.TransferBalanceRequest true "Transfer request"
// @Success 200 {object} services.Result
// @Failure 400 {object} services.Result
// @Failure 404 {object} services.Result
// @Failure 429 {object} services.Result
// @Router /balance/transfer [patch]
func (h *BalanceHandler) TransferBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req services.TransferBalanceRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}
	req.SenderUserID = userID

	res, err := h.service.TransferBalance(r.Context(), req)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, res.StatusCode, res)
}
