package models

import "time"

const (
	TARGET_TYPE_DOCUMENT = "document"
	TARGET_TYPE_CATEGORY = "category"
	TARGET_TYPE_SETTINGS = "settings"
	TARGET_TYPE_USER     = "user"
)

// MaxActivities caps the audit trail; the oldest entries beyond it are
// silently dropped on insert.
const MaxActivities = 200

// Activity is an append-only audit record, kept newest first.
type Activity struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Action     string    `json:"action"`
	Target     string    `json:"target"`
	TargetType string    `json:"targetType"`
	CreatedAt  time.Time `json:"createdAt"`
}
