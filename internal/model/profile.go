package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds per-user preferences. The user itself lives in the external
// identity provider; UserID is the subject it issues.
type Profile struct {
	UserID           uuid.UUID `json:"userId" db:"user_id"`
	FullName         *string   `json:"fullName" db:"full_name"`
	Currency         string    `json:"currency" db:"currency"`
	Language         string    `json:"language" db:"language"`
	NotificationDays []int32   `json:"notificationDays" db:"notification_days"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
