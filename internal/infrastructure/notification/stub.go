package notification

import (
	"context"

	"github.com/dovoc/backend/internal/domain/order"
	"go.uber.org/zap"
)

// StubDispatcher logs sends instead of performing them. Used when the
// EmailJS credentials are not configured.
type StubDispatcher struct {
	logger *zap.Logger
}

// NewStubDispatcher creates a dispatcher that only logs
func NewStubDispatcher(logger *zap.Logger) *StubDispatcher {
	return &StubDispatcher{logger: logger}
}

func (s *StubDispatcher) NotifyNewOrder(ctx context.Context, o *order.Order) error {
	s.logger.Info("email skipped: new order notification",
		zap.Int("order_number", o.Number))
	return nil
}

func (s *StubDispatcher) NotifyOrderApproved(ctx context.Context, o *order.Order) error {
	s.logger.Info("email skipped: order approval confirmation",
		zap.Int("order_number", o.Number),
		zap.String("customer_email", o.Customer.Email))
	return nil
}

func (s *StubDispatcher) NotifyNewSubscriber(ctx context.Context, email string) error {
	s.logger.Info("email skipped: new subscriber notification",
		zap.String("email", email))
	return nil
}

func (s *StubDispatcher) SendWelcome(ctx context.Context, email string) error {
	s.logger.Info("email skipped: subscriber welcome",
		zap.String("email", email))
	return nil
}

func (s *StubDispatcher) SendBroadcast(ctx context.Context, email, subject, message string) error {
	s.logger.Info("email skipped: newsletter broadcast",
		zap.String("email", email),
		zap.String("subject", subject))
	return nil
}

func (s *StubDispatcher) SendContactMessage(ctx context.Context, name, email, message string) error {
	s.logger.Info("email skipped: contact form message",
		zap.String("from", email))
	return nil
}
