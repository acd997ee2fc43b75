package serial

import (
	"time"

	"github.com/agencyops/backend/internal/domain/shared"
)

// SerialType represents the provisioning pool a serial belongs to
type SerialType string

const (
	// SerialTypeDefault serials are pre-provisioned for standard policies.
	SerialTypeDefault SerialType = "default"
	// SerialTypeAllianzWell serials are pre-provisioned for the Allianz
	// Well product line.
	SerialTypeAllianzWell SerialType = "allianz_well"
	// SerialTypeManual serials are registered by agents on first use.
	SerialTypeManual SerialType = "manual"
)

// Legacy serials carry 8 digits; the current format carries 9. A 9-digit
// lookup that misses but whose first 8 digits match an existing record is
// treated as a rename of that record, not a new serial.
const (
	LegacyValueLength = 8
	ValueLength       = 9
)

// SerialNumber is a pre-provisioned or manually-registered token gating one
// policy submission.
type SerialNumber struct {
	shared.BaseAggregateRoot
	Value  string
	Type   SerialType
	Issued bool
}

// NewSerialNumber creates an unissued serial in the given pool.
func NewSerialNumber(value string, serialType SerialType) (*SerialNumber, error) {
	if err := validateValue(value); err != nil {
		return nil, err
	}
	switch serialType {
	case SerialTypeDefault, SerialTypeAllianzWell, SerialTypeManual:
	default:
		return nil, shared.NewDomainError("INVALID_SERIAL_TYPE", "Unknown serial type")
	}
	return &SerialNumber{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Value:             value,
		Type:              serialType,
	}, nil
}

// NewManualSerial registers an agent-supplied serial, pre-marked as issued.
func NewManualSerial(value string) (*SerialNumber, error) {
	s, err := NewSerialNumber(value, SerialTypeManual)
	if err != nil {
		return nil, err
	}
	s.Issued = true
	return s, nil
}

// MarkIssued consumes the serial.
func (s *SerialNumber) MarkIssued() error {
	if s.Issued {
		return shared.NewDomainError("ALREADY_ISSUED", "Serial number has already been issued")
	}
	s.Issued = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Promote renames a legacy 8-digit serial to the full 9-digit value it was
// resolved through. The rename is idempotent: promoting to the value the
// record already holds is a no-op.
func (s *SerialNumber) Promote(fullValue string) error {
	if s.Value == fullValue {
		return nil
	}
	if len(fullValue) != ValueLength {
		return shared.NewDomainError("INVALID_SERIAL", "Promotion requires a 9-digit serial value")
	}
	if len(s.Value) != LegacyValueLength || fullValue[:LegacyValueLength] != s.Value {
		return shared.NewDomainError("INVALID_SERIAL", "Promoted value must extend the stored serial")
	}
	s.Value = fullValue
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

func validateValue(value string) error {
	if value == "" {
		return shared.NewDomainError("INVALID_SERIAL", "Serial value cannot be empty")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_SERIAL", "Serial value must contain only digits")
		}
	}
	return nil
}
