package models

import (
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for an audit log entry.
type AuditEntryModel struct {
	BaseModel
	Action    string    `gorm:"type:varchar(50);not null;index"`
	Actor     string    `gorm:"type:varchar(100);not null"`
	Details   string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry.
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		Action:     audit.Action(m.Action),
		Actor:      m.Actor,
		Details:    m.Details,
		Timestamp:  m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain audit Entry.
func (m *AuditEntryModel) FromDomain(e *audit.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Action = string(e.Action)
	m.Actor = e.Actor
	m.Details = e.Details
	m.Timestamp = e.Timestamp
}

// AuditEntryModelFromDomain creates a new persistence model from a domain audit Entry.
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(e)
	return m
}
