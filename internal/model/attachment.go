package model

// AttachmentKind names the document slots a product can carry.
type AttachmentKind string

const (
	AttachmentReceipt AttachmentKind = "receipt"
	AttachmentManual  AttachmentKind = "manual"
	AttachmentImage   AttachmentKind = "image"
)

// Valid reports whether k is one of the known attachment kinds.
func (k AttachmentKind) Valid() bool {
	switch k {
	case AttachmentReceipt, AttachmentManual, AttachmentImage:
		return true
	}
	return false
}
