package serialapp

import "time"

// ProvisionRequest asks for a serial to gate a new submission. PolicyType is
// the product label from the submission form; SerialNumber is only read for
// manual-category products, where the agent supplies their own value.
type ProvisionRequest struct {
	PolicyType   string `json:"policy_type" binding:"required,min=1,max=200"`
	SerialNumber string `json:"serial_number" binding:"omitempty,numeric,max=20"`
}

// ProvisionResponse carries the claimed serial value
type ProvisionResponse struct {
	SerialNumber string    `json:"serial_number"`
	SerialType   string    `json:"serial_type"`
	IssuedAt     time.Time `json:"issued_at"`
}

// ResolveRequest looks up the record behind a serial value
type ResolveRequest struct {
	SerialNumber string `json:"serial_number" binding:"required,min=1,max=20"`
}

// ResolveResponse reports the stored record. Migrated is true when the match
// went through the legacy 8-digit prefix of a 9-digit input.
type ResolveResponse struct {
	SerialNumber string `json:"serial_number"`
	SerialType   string `json:"serial_type"`
	Issued       bool   `json:"issued"`
	Migrated     bool   `json:"migrated"`
}
