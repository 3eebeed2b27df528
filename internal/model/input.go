package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput is the request body for creating or updating a product.
// Dates travel as YYYY-MM-DD strings; validation happens in the service
// layer before anything reaches the warranty engine.
type ProductInput struct {
	CategoryID        *uuid.UUID       `json:"categoryId"`
	Name              string           `json:"name"`
	Brand             *string          `json:"brand"`
	Model             *string          `json:"model"`
	SerialNumber      *string          `json:"serialNumber"`
	PurchaseDate      string           `json:"purchaseDate"`
	PurchasePrice     *decimal.Decimal `json:"purchasePrice"`
	Currency          string           `json:"currency"`
	RetailerName      *string          `json:"retailerName"`
	RetailerPhone     *string          `json:"retailerPhone"`
	RetailerEmail     *string          `json:"retailerEmail"`
	RetailerWebsite   *string          `json:"retailerWebsite"`
	WarrantyMonths    int              `json:"warrantyMonths"`
	EUStatutoryMonths int              `json:"euStatutoryMonths"`
	Notes             *string          `json:"notes"`
	IsTransferred     bool             `json:"isTransferred"`
	TransferDate      *string          `json:"transferDate"`
	TransferBuyerName *string          `json:"transferBuyerName"`
	IsActive          *bool            `json:"isActive"`
}

// ClaimInput is the request body for opening a warranty claim.
type ClaimInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// ClaimUpdateInput is the request body for amending a claim. Nil fields are
// left unchanged.
type ClaimUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Resolution  *string `json:"resolution"`
}

// ProfileInput is the request body for saving user preferences.
type ProfileInput struct {
	FullName         *string `json:"fullName"`
	Currency         string  `json:"currency"`
	Language         string  `json:"language"`
	NotificationDays []int32 `json:"notificationDays"`
}
