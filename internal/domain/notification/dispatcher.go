// Package notification defines the outbound email contract. All sends
// are best-effort from the caller's point of view: order and newsletter
// flows log failures and move on, they never surface them to the
// customer-facing operation.
package notification

import (
	"context"

	"github.com/dovoc/backend/internal/domain/order"
)

// Dispatcher sends transactional and broadcast email
type Dispatcher interface {
	// NotifyNewOrder alerts the shop admin that a checkout completed
	NotifyNewOrder(ctx context.Context, o *order.Order) error

	// NotifyOrderApproved sends the customer their order confirmation
	NotifyOrderApproved(ctx context.Context, o *order.Order) error

	// NotifyNewSubscriber alerts the shop admin about a new subscriber
	NotifyNewSubscriber(ctx context.Context, email string) error

	// SendWelcome greets a new newsletter subscriber
	SendWelcome(ctx context.Context, email string) error

	// SendBroadcast delivers one newsletter issue to one recipient
	SendBroadcast(ctx context.Context, email, subject, message string) error

	// SendContactMessage forwards a contact-form submission to the admin
	SendContactMessage(ctx context.Context, name, email, message string) error
}
