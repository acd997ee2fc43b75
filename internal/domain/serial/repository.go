package serial

import "context"

// Repository defines serial number persistence operations
type Repository interface {
	FindByValue(ctx context.Context, value string) (*SerialNumber, error)
	// FindByLegacyPrefix looks up an 8-digit record whose value equals the
	// given prefix.
	FindByLegacyPrefix(ctx context.Context, prefix string) (*SerialNumber, error)
	// ClaimUnissued atomically marks one unissued serial of the given type
	// as issued and returns it. Returns ErrSerialExhausted when the pool
	// is empty.
	ClaimUnissued(ctx context.Context, serialType SerialType) (*SerialNumber, error)
	Save(ctx context.Context, s *SerialNumber) error
	CountUnissued(ctx context.Context, serialType SerialType) (int64, error)
}
