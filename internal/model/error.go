package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeInvalidWarranty    = "INVALID_WARRANTY"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidClaimStatus = "INVALID_CLAIM_STATUS"
	ErrCodeInvalidQuery       = "INVALID_QUERY"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeClaimNotFound      = "CLAIM_NOT_FOUND"
	ErrCodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCodeAttachmentMissing  = "ATTACHMENT_MISSING"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable error code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrClaimNotFound      = NewDomainError(ErrCodeClaimNotFound, "Claim not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrAttachmentMissing  = NewDomainError(ErrCodeAttachmentMissing, "Product has no attachment of the requested kind")
	ErrInvalidWarranty    = NewDomainError(ErrCodeInvalidWarranty, "Warranty durations must be positive month counts")
	ErrInvalidPrice       = NewDomainError(ErrCodeInvalidPrice, "Purchase price must not be negative")
	ErrInvalidDate        = NewDomainError(ErrCodeInvalidDate, "Purchase date must be a valid YYYY-MM-DD date")
	ErrInvalidClaimStatus = NewDomainError(ErrCodeInvalidClaimStatus, "Unknown claim status")
)
