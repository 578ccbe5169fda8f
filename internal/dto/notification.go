package dto

import (
	"time"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// NotificationResponse is one notification row for the bell dropdown.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Message        string    `json:"message"`
	RelatedType    string    `json:"relatedType"`
	RelatedID      string    `json:"relatedID"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponses converts domain notifications.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			Message:        n.Message,
			RelatedType:    n.RelatedType,
			RelatedID:      n.RelatedID,
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
		}
	}
	return out
}
