package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warranty-vault/internal/model"
)

func TestBuildKey(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name     string
		kind     model.AttachmentKind
		filename string
		expected string
	}{
		{
			name:     "Receipt keeps extension",
			kind:     model.AttachmentReceipt,
			filename: "scan.pdf",
			expected: userID.String() + "/" + productID.String() + "/receipt.pdf",
		},
		{
			name:     "Image keeps extension",
			kind:     model.AttachmentImage,
			filename: "photo.JPG",
			expected: userID.String() + "/" + productID.String() + "/image.JPG",
		},
		{
			name:     "No extension",
			kind:     model.AttachmentManual,
			filename: "manual",
			expected: userID.String() + "/" + productID.String() + "/manual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildKey(userID, productID, tt.kind, tt.filename))
		})
	}
}

func TestLocalStore_PutAndURL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStore(dir, zerolog.Nop())
	require.NoError(t, err)

	key := "user/product/receipt.pdf"
	require.NoError(t, store.Put(ctx, key, "application/pdf", strings.NewReader("%PDF-1.4")))

	data, err := os.ReadFile(filepath.Join(dir, "user", "product", "receipt.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	url, err := store.URL(ctx, key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "receipt.pdf"))
}

func TestLocalStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	key := "user/product/manual.pdf"
	require.NoError(t, store.Put(ctx, key, "application/pdf", strings.NewReader("first")))
	require.NoError(t, store.Put(ctx, key, "application/pdf", strings.NewReader("second")))

	url, err := store.URL(ctx, key)
	require.NoError(t, err)

	data, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStore_URLMissingObject(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	_, err = store.URL(ctx, "nothing/here.pdf")
	require.Error(t, err)
}
