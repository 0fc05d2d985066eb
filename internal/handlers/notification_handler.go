package handlers

import (
	"context"
	"net/http"

	"github.com/ruralpay/wallet/internal/services"
)

type NotificationReader interface {
	FetchNotifications(ctx context.Context, userID int64, page, size int) (*services.NotificationsResponse, error)
}

type NotificationHandler struct {
	service   NotificationReader
	validator *services.ValidationHelper
}

func NewNotificationHandler(service NotificationReader) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// Notifications pages through the caller's notifications, newest first
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int true "Page number"
// @Param size query int true "Page size"
// @Success 200 {object} services.NotificationsResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.Result
// @Router /notifications [get]
func (h *NotificationHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		services.SendErrorResponse(w, "Invalid query parameters", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&page); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	res, err := h.service.FetchNotifications(r.Context(), userID, page.Page, page.Size)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, res)
}
