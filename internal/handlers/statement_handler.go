package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/ruralpay/wallet/internal/services"
)

type StatementReader interface {
	FetchLoadFundTransactions(ctx context.Context, userID int64) (*services.LoadFundTransactionsResponse, error)
	FetchLoadFundTransaction(ctx context.Context, userID, id int64) (*services.LoadFundTransactionResponse, error)
	FetchBalanceTransferStatements(ctx context.Context, userID int64, q services.StatementQuery) (*services.StatementsResponse, error)
}

type StatementHandler struct {
	service   StatementReader
	validator *services.ValidationHelper
}

func NewStatementHandler(service StatementReader) *StatementHandler {
	return &StatementHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// LoadFundTransactions lists the caller's bank loads
// @Summary List load fund transactions
// @Tags Statements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.LoadFundTransactionsResponse
// @Failure 404 {object} services.Result
// @Router /statements/load-fund [get]
func (h *StatementHandler) LoadFundTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.FetchLoadFundTransactions(r.Context(), userID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, res)
}

// LoadFundTransaction returns one of the caller's bank loads
// @Summary Get load fund transaction
// @Tags Statements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} services.LoadFundTransactionResponse
// @Failure 404 {object} services.Result
// @Router /statements/load-fund/{id} [get]
func (h *StatementHandler) LoadFundTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		services.SendErrorResponse(w, "Invalid transaction id", http.StatusBadRequest, nil)
		return
	}

	res, err := h.service.FetchLoadFundTransaction(r.Context(), userID, id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, res)
}

// BalanceTransferStatements pages through the caller's transfers
// @Summary List balance transfer statements
// @Tags Statements
// @Produce json
// @Security BearerAuth
// @Param page query int true "Page number"
// @Param size query int true "Page size"
// @Param cashFlow query string true "All, Debit or Credit"
// @Param startDate query int false "Start, epoch milliseconds"
// @Param endDate query int false "End, epoch milliseconds"
// @Success 200 {object} services.StatementsResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.Result
// @Router /statements/balance-transfer [get]
func (h *StatementHandler) BalanceTransferStatements(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		services.SendErrorResponse(w, "Invalid query parameters", http.StatusBadRequest, nil)
		return
	}

	q := services.StatementQuery{
		Page:     page.Page,
		Size:     page.Size,
		CashFlow: models.CashFlow(r.URL.Query().Get("cashFlow")),
	}

	start, hasStart, err := queryInt(r, "startDate")
	if err != nil {
		services.SendErrorResponse(w, "Invalid query parameters", http.StatusBadRequest, nil)
		return
	}
	end, hasEnd, err := queryInt(r, "endDate")
	if err != nil {
		services.SendErrorResponse(w, "Invalid query parameters", http.StatusBadRequest, nil)
		return
	}
	if hasStart {
		q.StartDate = &start
	}
	if hasEnd {
		q.EndDate = &end
	}

	if err := h.validator.ValidateStruct(&q); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	res, err := h.service.FetchBalanceTransferStatements(r.Context(), userID, q)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, res)
}
