package models

import (
	"time"

	"github.com/dovoc/backend/internal/domain/newsletter"
)

// SubscriberModel is the persistence model for the Subscriber entity.
type SubscriberModel struct {
	BaseModel
	Email        string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	SubscribedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

// ToDomain converts the persistence model to a domain Subscriber entity.
func (m *SubscriberModel) ToDomain() *newsletter.Subscriber {
	return &newsletter.Subscriber{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		SubscribedAt: m.SubscribedAt,
	}
}

// FromDomain populates the persistence model from a domain Subscriber entity.
func (m *SubscriberModel) FromDomain(s *newsletter.Subscriber) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Email = s.Email
	m.SubscribedAt = s.SubscribedAt
}

// SubscriberModelFromDomain creates a new persistence model from a domain Subscriber entity.
func SubscriberModelFromDomain(s *newsletter.Subscriber) *SubscriberModel {
	m := &SubscriberModel{}
	m.FromDomain(s)
	return m
}
