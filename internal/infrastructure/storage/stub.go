// Package storage provides object storage implementations for document uploads.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	submissionapp "github.com/agencyops/backend/internal/application/submission"
)

// StubObjectStorage is a placeholder implementation of the storage port.
// It discards uploads and fabricates URLs. Use it for development until a
// real S3-compatible backend is configured.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated object URLs
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
	}
}

// Ensure StubObjectStorage implements the application port
var _ submissionapp.ObjectStorage = (*StubObjectStorage)(nil)

// Upload discards the body and returns a fabricated public URL
func (s *StubObjectStorage) Upload(ctx context.Context, storageKey, contentType string, body io.Reader, size int64) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + storageKey, nil
}

// GenerateDownloadURL generates a stub presigned URL for downloading an object
func (s *StubObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// DeleteObject is a no-op stub that always succeeds
func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}
