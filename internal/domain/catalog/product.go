package catalog

import (
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a storefront product
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  *string
	ImageURL    string
	InStock     bool
}

// NewProduct creates a new product
func NewProduct(name, description string, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION", "Product name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
		InStock:     true,
	}, nil
}

// Update replaces the mutable product fields
func (p *Product) Update(name, description string, price decimal.Decimal, inStock bool) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION", "Product name is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError("VALIDATION", "Product price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.InStock = inStock
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID string) {
	if categoryID == "" {
		p.CategoryID = nil
		return
	}
	p.CategoryID = &categoryID
}

// SetImageURL sets the product image location
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
}
