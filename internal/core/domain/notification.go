package domain

import "time"

// Notification is an append-only message to a user about one of their
// applications or transfers. Only IsRead is mutable after insert.
type Notification struct {
	NotificationID string    `json:"notificationID"`
	UserID         string    `json:"userID"`
	Message        string    `json:"message"`
	RelatedType    string    `json:"relatedType"` // "loan_application" or "transfer"
	RelatedID      string    `json:"relatedID"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
