package model

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus tracks a warranty claim through its lifecycle.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "pending"
	ClaimSubmitted ClaimStatus = "submitted"
	ClaimInReview  ClaimStatus = "in_review"
	ClaimApproved  ClaimStatus = "approved"
	ClaimRejected  ClaimStatus = "rejected"
	ClaimResolved  ClaimStatus = "resolved"
)

// Valid reports whether s is one of the known claim statuses.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimPending, ClaimSubmitted, ClaimInReview, ClaimApproved, ClaimRejected, ClaimResolved:
		return true
	}
	return false
}

// ClaimLog records a warranty claim raised against a product.
type ClaimLog struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	ProductID   uuid.UUID   `json:"productId" db:"product_id"`
	UserID      uuid.UUID   `json:"userId" db:"user_id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description" db:"description"`
	Status      ClaimStatus `json:"status" db:"status"`
	Resolution  *string     `json:"resolution" db:"resolution"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}
