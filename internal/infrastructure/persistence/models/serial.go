package models

import (
	"github.com/agencyops/backend/internal/domain/serial"
	"github.com/agencyops/backend/internal/domain/shared"
)

// SerialModel is the GORM model for serial numbers
type SerialModel struct {
	AggregateModel
	Value  string `gorm:"size:16;not null;uniqueIndex"`
	Type   string `gorm:"size:32;not null;index:idx_serials_pool"`
	Issued bool   `gorm:"not null;default:false;index:idx_serials_pool"`
}

// TableName specifies the table name for SerialModel
func (SerialModel) TableName() string {
	return "serial_numbers"
}

// ToDomain converts SerialModel to domain SerialNumber
func (m *SerialModel) ToDomain() *serial.SerialNumber {
	return &serial.SerialNumber{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Value:  m.Value,
		Type:   serial.SerialType(m.Type),
		Issued: m.Issued,
	}
}

// SerialModelFromDomain converts domain SerialNumber to SerialModel
func SerialModelFromDomain(s *serial.SerialNumber) *SerialModel {
	model := &SerialModel{
		Value:  s.Value,
		Type:   string(s.Type),
		Issued: s.Issued,
	}
	model.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return model
}
