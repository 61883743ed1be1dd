package catalog

import (
	"github.com/dovoc/backend/internal/domain/shared"
)

// Category groups products for storefront navigation
type Category struct {
	shared.BaseEntity
	Name        string
	Description string
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "Category name is required")
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}
