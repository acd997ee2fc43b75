package submission

import (
	"context"
	"io"
	"time"
)

// ObjectStorage defines the interface for document storage operations.
// Implemented by the infrastructure layer (S3-compatible backends).
type ObjectStorage interface {
	// Upload stores an object and returns its public URL
	Upload(ctx context.Context, storageKey, contentType string, body io.Reader, size int64) (string, error)

	// GenerateDownloadURL generates a presigned URL for downloading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// Mailer sends outbound notification email. Delivery is best-effort; callers
// must never let a send failure fail the surrounding request.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
