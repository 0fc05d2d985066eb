package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/models"
)

func InsertNotification(ctx context.Context, q sqlx.QueryerContext, n *models.Notification) (int64, error) {
	var id int64
	err := q.QueryRowxContext(ctx, `
		INSERT INTO notifications (user_id, message, type, data_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, n.UserID, n.Message, n.Type, n.DataID).Scan(&id)
	return id, err
}

func ListNotifications(ctx context.Context, q sqlx.QueryerContext, userID int64, limit, offset int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := sqlx.SelectContext(ctx, q, &notifications, `
		SELECT id, user_id, message, type, data_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	return notifications, err
}

func CountNotifications(ctx context.Context, q sqlx.QueryerContext, userID int64) (int64, error) {
	var total int64
	err := sqlx.GetContext(ctx, q, &total, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
	return total, err
}
