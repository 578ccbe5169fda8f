package repositories

import (
	"context"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// NotificationRepository is the append-only notification sink plus the read
// surface for the bell dropdown.
type NotificationRepository interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
}
