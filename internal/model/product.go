package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a purchased item whose warranty is being tracked.
// PurchaseDate carries calendar-date semantics only; the time component is
// always midnight UTC.
type Product struct {
	ID                uuid.UUID           `json:"id" db:"id"`
	UserID            uuid.UUID           `json:"userId" db:"user_id"`
	CategoryID        *uuid.UUID          `json:"categoryId" db:"category_id"`
	Name              string              `json:"name" db:"name"`
	Brand             *string             `json:"brand" db:"brand"`
	Model             *string             `json:"model" db:"model"`
	SerialNumber      *string             `json:"serialNumber" db:"serial_number"`
	PurchaseDate      time.Time           `json:"purchaseDate" db:"purchase_date"`
	PurchasePrice     decimal.NullDecimal `json:"purchasePrice" db:"purchase_price"`
	Currency          string              `json:"currency" db:"currency"`
	RetailerName      *string             `json:"retailerName" db:"retailer_name"`
	RetailerPhone     *string             `json:"retailerPhone" db:"retailer_phone"`
	RetailerEmail     *string             `json:"retailerEmail" db:"retailer_email"`
	RetailerWebsite   *string             `json:"retailerWebsite" db:"retailer_website"`
	WarrantyMonths    int                 `json:"warrantyMonths" db:"warranty_months"`
	EUStatutoryMonths int                 `json:"euStatutoryMonths" db:"eu_statutory_months"`
	Notes             *string             `json:"notes" db:"notes"`
	ReceiptKey        *string             `json:"receiptKey" db:"receipt_key"`
	ManualKey         *string             `json:"manualKey" db:"manual_key"`
	ImageKey          *string             `json:"imageKey" db:"image_key"`
	IsTransferred     bool                `json:"isTransferred" db:"is_transferred"`
	TransferDate      *time.Time          `json:"transferDate" db:"transfer_date"`
	TransferBuyerName *string             `json:"transferBuyerName" db:"transfer_buyer_name"`
	IsActive          bool                `json:"isActive" db:"is_active"`
	CreatedAt         time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time           `json:"updatedAt" db:"updated_at"`
}

// PriceOrZero returns the purchase price, treating an absent price as zero.
func (p *Product) PriceOrZero() decimal.Decimal {
	if !p.PurchasePrice.Valid {
		return decimal.Zero
	}
	return p.PurchasePrice.Decimal
}
