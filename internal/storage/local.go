package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore implements AttachmentStore on the local file system. Intended
// for development only: the returned URLs are file paths, not HTTP URLs.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates a file-system-backed attachment store rooted at dir.
func NewLocalStore(dir string, logger zerolog.Logger) (AttachmentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory %s: %w", dir, err)
	}

	logger.Info().Str("dir", dir).Msg("local attachment store initialised")

	return &localStore{
		dir:    dir,
		logger: logger.With().Str("component", "local-attachment-store").Logger(),
	}, nil
}

// Put writes the attachment body to a file under the store root.
func (s *localStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	target := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create attachment directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		s.logger.Error().Err(err).Str("path", target).Msg("failed to create attachment file")
		return fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		s.logger.Error().Err(err).Str("path", target).Msg("failed to write attachment file")
		return fmt.Errorf("failed to write attachment file: %w", err)
	}

	s.logger.Debug().Str("path", target).Msg("attachment stored locally")
	return nil
}

// URL returns a file URL pointing at the stored attachment.
func (s *localStore) URL(ctx context.Context, key string) (string, error) {
	target := filepath.Join(s.dir, filepath.FromSlash(key))

	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("attachment not found at %s: %w", target, err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve attachment path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
