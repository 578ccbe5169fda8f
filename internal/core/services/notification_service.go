package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
)

// notificationService implements NotificationSvcFacade. Notifications are
// written by the workflow and transfer services; this service only reads and
// marks them.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepository
}

// NewNotificationService creates a new notification service instance.
func NewNotificationService(repo portsrepo.NotificationRepository) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: repo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// ListNotifications returns a user's notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, err
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

// MarkRead flips the is_read flag on one of the user's own notifications.
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark notification read", slog.String("notification_id", notificationID))
		}
		return err
	}
	return nil
}
