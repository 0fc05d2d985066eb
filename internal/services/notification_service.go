package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/ruralpay/wallet/internal/config"
	"github.com/ruralpay/wallet/internal/logger"
	"github.com/ruralpay/wallet/internal/metrics"
	"github.com/ruralpay/wallet/internal/models"
	"github.com/ruralpay/wallet/internal/store"
	"github.com/sirupsen/logrus"
)

// NotificationService persists user notifications. Writes are best effort:
// a failed insert is parked on a Redis list and retried by RunRetryWorker.
type NotificationService struct {
	db    *sqlx.DB
	redis *redis.Client
	cfg   *config.NotificationConfig
}

type queuedNotification struct {
	Notification models.Notification `json:"notification"`
	Attempts     int                 `json:"attempts"`
}

type NotificationsResponse struct {
	StatusCode    int                   `json:"statusCode"`
	Message       string                `json:"message"`
	Notifications []models.Notification `json:"notifications"`
	TotalCount    int64                 `json:"totalCount"`
}

func NewNotificationService(db *sqlx.DB, redis *redis.Client, cfg *config.NotificationConfig) *NotificationService {
	return &NotificationService{db: db, redis: redis, cfg: cfg}
}

func (s *NotificationService) Notify(ctx context.Context, notifications ...models.Notification) {
	ctx = context.WithoutCancel(ctx)
	for _, n := range notifications {
		if _, err := store.InsertNotification(ctx, s.db, &n); err != nil {
			metrics.RecordNotification("failed")
			logger.WithUser(n.UserID).WithError(err).Warn("[NOTIFY] insert failed, queueing for retry")
			s.enqueue(ctx, queuedNotification{Notification: n, Attempts: 1})
			continue
		}
		metrics.RecordNotification("stored")
	}
}

func (s *NotificationService) enqueue(ctx context.Context, q queuedNotification) {
	entry := logger.WithUser(q.Notification.UserID).WithFields(logrus.Fields{
		"type":     q.Notification.Type,
		"data_id":  q.Notification.DataID,
		"message":  q.Notification.Message,
		"attempts": q.Attempts,
	})

	if s.redis == nil {
		entry.Error("[NOTIFY] notification lost, no retry queue available")
		return
	}

	payload, err := json.Marshal(q)
	if err != nil {
		entry.WithError(err).Error("[NOTIFY] notification lost, encode failed")
		return
	}

	if err := s.redis.RPush(ctx, s.cfg.RetryQueue, string(payload)).Err(); err != nil {
		entry.WithError(err).Error("[NOTIFY] notification lost, enqueue failed")
	}
}

// RunRetryWorker drains the retry queue every RetryInterval until ctx is done.
func (s *NotificationService) RunRetryWorker(ctx context.Context) {
	if s.redis == nil {
		return
	}

	ticker := time.NewTicker(s.cfg.RetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.processRetries(ctx); err != nil {
				logger.Log.WithError(err).Error("[NOTIFY] retry pass failed")
			}
		}
	}
}

// processRetries handles the entries queued before the pass started and
// returns how many were stored.
func (s *NotificationService) processRetries(ctx context.Context) (int, error) {
	pending, err := s.redis.LLen(ctx, s.cfg.RetryQueue).Result()
	if err != nil {
		return 0, err
	}

	stored := 0
	for i := int64(0); i < pending; i++ {
		raw, err := s.redis.LPop(ctx, s.cfg.RetryQueue).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return stored, err
		}

		var q queuedNotification
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			logger.Log.WithError(err).WithField("payload", raw).Error("[NOTIFY] dropping malformed queue entry")
			continue
		}

		if _, err := store.InsertNotification(ctx, s.db, &q.Notification); err != nil {
			q.Attempts++
			if q.Attempts >= s.cfg.MaxAttempts {
				metrics.RecordNotification("dropped")
				logger.WithUser(q.Notification.UserID).WithError(err).WithFields(logrus.Fields{
					"type":    q.Notification.Type,
					"data_id": q.Notification.DataID,
					"message": q.Notification.Message,
				}).Error("[NOTIFY] giving up on notification")
				continue
			}
			s.enqueue(ctx, q)
			continue
		}

		metrics.RecordNotification("retried")
		stored++
	}
	return stored, nil
}

func (s *NotificationService) FetchNotifications(ctx context.Context, userID int64, page, size int) (*NotificationsResponse, error) {
	notifications, err := store.ListNotifications(ctx, s.db, userID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, ErrNotificationsNotFound
	}

	total, err := store.CountNotifications(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	return &NotificationsResponse{
		StatusCode:    http.StatusOK,
		Message:       "Notifications fetched successfully.",
		Notifications: notifications,
		TotalCount:    total,
	}, nil
}
