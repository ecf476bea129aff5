package domain

import "time"

// NotificationKind classifies a user-facing message.
type NotificationKind string

const (
	NotificationOutOfStock   NotificationKind = "out_of_stock"
	NotificationAddFailed    NotificationKind = "add_failed"
	NotificationRemoveFailed NotificationKind = "remove_failed"
	NotificationUpdateFailed NotificationKind = "update_failed"
)

// Notification is a transient message shown to the shopper. No acknowledgment is expected.
type Notification struct {
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}
