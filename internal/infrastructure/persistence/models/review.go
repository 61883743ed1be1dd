package models

import (
	"github.com/dovoc/backend/internal/domain/review"
	"github.com/google/uuid"
)

// ReviewModel is the persistence model for the Review entity.
type ReviewModel struct {
	BaseModel
	ProductID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string     `gorm:"type:varchar(200);not null"`
	Rating       int        `gorm:"not null"`
	Comment      string     `gorm:"type:text"`
	Type         string     `gorm:"type:varchar(20);not null;index"`
	IsFeatured   bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review entity.
func (m *ReviewModel) ToDomain() *review.Review {
	return &review.Review{
		BaseEntity:   m.BaseModel.ToDomain(),
		ProductID:    m.ProductID,
		CustomerName: m.CustomerName,
		Rating:       m.Rating,
		Comment:      m.Comment,
		Type:         review.Type(m.Type),
		IsFeatured:   m.IsFeatured,
	}
}

// FromDomain populates the persistence model from a domain Review entity.
func (m *ReviewModel) FromDomain(r *review.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.CustomerName = r.CustomerName
	m.Rating = r.Rating
	m.Comment = r.Comment
	m.Type = string(r.Type)
	m.IsFeatured = r.IsFeatured
}

// ReviewModelFromDomain creates a new persistence model from a domain Review entity.
func ReviewModelFromDomain(r *review.Review) *ReviewModel {
	m := &ReviewModel{}
	m.FromDomain(r)
	return m
}
