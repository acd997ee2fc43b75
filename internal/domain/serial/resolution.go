package serial

import (
	"context"
	"errors"

	"github.com/agencyops/backend/internal/domain/shared"
)

// Resolution is the outcome of looking up a serial value. Migrated is set
// when the match was made through the legacy 8-digit prefix of a 9-digit
// input rather than an exact value.
type Resolution struct {
	Serial   *SerialNumber
	Migrated bool
}

// Resolve finds the record backing a serial value. Exact matches win; a
// 9-digit value that has no exact record falls back to the 8-digit record
// sharing its prefix.
func Resolve(ctx context.Context, repo Repository, value string) (*Resolution, error) {
	if err := validateValue(value); err != nil {
		return nil, err
	}
	found, err := repo.FindByValue(ctx, value)
	if err == nil {
		return &Resolution{Serial: found}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if len(value) != ValueLength {
		return nil, shared.ErrNotFound
	}
	legacy, err := repo.FindByLegacyPrefix(ctx, value[:LegacyValueLength])
	if err != nil {
		return nil, err
	}
	return &Resolution{Serial: legacy, Migrated: true}, nil
}
