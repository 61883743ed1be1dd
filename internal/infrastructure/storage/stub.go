package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	catalogapp "github.com/dovoc/backend/internal/application/catalog"
	"github.com/google/uuid"
)

// Ensure StubImageStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*StubImageStorage)(nil)

// StubImageStorage is a placeholder implementation of ImageStorage for
// development without a storage backend. Bodies are drained and
// discarded; the returned URLs point nowhere.
type StubImageStorage struct {
	BaseURL string
}

// NewStubImageStorage creates a new StubImageStorage
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://storage.example.com",
	}
}

// Upload discards the body and returns a fake public URL
func (s *StubImageStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if body == nil {
		return "", errors.New("upload body is required")
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}

	return strings.TrimRight(s.BaseURL, "/") + "/" + imageKeyPrefix + uuid.NewString() + normalizeExtension(filename), nil
}

// Delete is a no-op that always succeeds
func (s *StubImageStorage) Delete(ctx context.Context, imageURL string) error {
	return nil
}
