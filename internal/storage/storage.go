// Package storage persists product attachments (receipts, manuals, photos)
// in an object store. The S3 implementation is the production path; the local
// implementation backs development setups without AWS credentials.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"warranty-vault/internal/model"
)

// AttachmentStore defines the interface for attachment blob storage.
type AttachmentStore interface {
	// Put stores the attachment body under the given key, overwriting any
	// previous object.
	Put(ctx context.Context, key, contentType string, body io.Reader) error

	// URL returns a time-limited download URL for the stored object.
	URL(ctx context.Context, key string) (string, error)
}

// BuildKey derives the object key for one attachment slot of a product. One
// key per (product, kind) pair: re-uploading replaces the previous file.
func BuildKey(userID, productID uuid.UUID, kind model.AttachmentKind, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%s/%s%s", userID, productID, kind, ext)
}
