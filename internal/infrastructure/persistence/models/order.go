package models

import (
	"time"

	"github.com/dovoc/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	BaseModel
	Number          int              `gorm:"not null;uniqueIndex"`
	CustomerName    string           `gorm:"type:varchar(200);not null"`
	CustomerEmail   string           `gorm:"type:varchar(200);not null"`
	CustomerPhone   string           `gorm:"type:varchar(50);not null"`
	CustomerAddress string           `gorm:"type:varchar(500);not null"`
	CustomerCity    string           `gorm:"type:varchar(100);not null"`
	CustomerZip     string           `gorm:"type:varchar(20);not null"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	Total           decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Status          string           `gorm:"type:varchar(20);not null;index"`
	ApprovedAt      *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	RejectedAt      *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line item.
type OrderItemModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position int             `gorm:"not null"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		Number:     m.Number,
		Customer: order.Customer{
			Name:    m.CustomerName,
			Email:   m.CustomerEmail,
			Phone:   m.CustomerPhone,
			Address: m.CustomerAddress,
			City:    m.CustomerCity,
			Zip:     m.CustomerZip,
		},
		Total:       m.Total,
		Status:      order.Status(m.Status),
		ApprovedAt:  m.ApprovedAt,
		ShippedAt:   m.ShippedAt,
		DeliveredAt: m.DeliveredAt,
		RejectedAt:  m.RejectedAt,
		CancelledAt: m.CancelledAt,
		Items:       make([]order.Item, len(m.Items)),
	}
	for i, item := range m.Items {
		o.Items[i] = order.Item{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Number = o.Number
	m.CustomerName = o.Customer.Name
	m.CustomerEmail = o.Customer.Email
	m.CustomerPhone = o.Customer.Phone
	m.CustomerAddress = o.Customer.Address
	m.CustomerCity = o.Customer.City
	m.CustomerZip = o.Customer.Zip
	m.Total = o.Total
	m.Status = string(o.Status)
	m.ApprovedAt = o.ApprovedAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.RejectedAt = o.RejectedAt
	m.CancelledAt = o.CancelledAt
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:       uuid.New(),
			OrderID:  o.ID,
			Position: i,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
