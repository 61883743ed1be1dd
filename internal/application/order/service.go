package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/notification"
	"github.com/dovoc/backend/internal/domain/order"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultNotifyTimeout = 5 * time.Second

// maxCheckoutAttempts bounds the redraws when two checkouts race on the
// same order number. The check in GenerateNumber is advisory; the unique
// index on number is what actually arbitrates, so the loser redraws here.
const maxCheckoutAttempts = 3

// ErrDuplicateSubmission is returned when a checkout idempotency key is
// replayed within its window
var ErrDuplicateSubmission = shared.NewDomainError("DUPLICATE_SUBMISSION", "This order was already submitted")

// Service handles the order lifecycle: checkout, the approval workflow,
// deletion and dashboard analytics. Audit writes and email sends around
// status changes are best-effort; they never fail the mutation.
type Service struct {
	orders         order.Repository
	recorder       audit.Recorder
	dispatcher     notification.Dispatcher
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	notifyTimeout  time.Duration
	logger         *zap.Logger
}

// NewService creates a new order Service
func NewService(orders order.Repository, recorder audit.Recorder, dispatcher notification.Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders:        orders,
		recorder:      recorder,
		dispatcher:    dispatcher,
		notifyTimeout: defaultNotifyTimeout,
		logger:        logger,
	}
}

// SetCheckoutGuard enables the duplicate-submission guard for checkout
func (s *Service) SetCheckoutGuard(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	s.idempotencyTTL = ttl
}

// SetNotifyTimeout overrides the bound applied to notification sends
func (s *Service) SetNotifyTimeout(d time.Duration) {
	if d > 0 {
		s.notifyTimeout = d
	}
}

// Create records a checkout submission as a new Pending Approval order.
// The total is recomputed from the items; any client-supplied total is
// discarded. The admin notification is best-effort.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if err := s.claimIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, in := range req.Items {
		item, err := order.NewItem(in.Name, in.Price, in.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	customer := order.Customer{
		Name:    req.Customer.Name,
		Email:   req.Customer.Email,
		Phone:   req.Customer.Phone,
		Address: req.Customer.Address,
		City:    req.Customer.City,
		Zip:     req.Customer.Zip,
	}

	o, err := s.saveWithFreshNumber(ctx, customer, items)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "new order", func(nctx context.Context) error {
		return s.dispatcher.NotifyNewOrder(nctx, o)
	})

	resp := ToOrderResponse(o)
	return &resp, nil
}

// saveWithFreshNumber draws an order number, builds the order and saves
// it, redrawing when a concurrent checkout claimed the same number first.
func (s *Service) saveWithFreshNumber(ctx context.Context, customer order.Customer, items []order.Item) (*order.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxCheckoutAttempts; attempt++ {
		number, err := s.orders.GenerateNumber(ctx)
		if err != nil {
			return nil, err
		}

		o, err := order.New(number, customer, items)
		if err != nil {
			return nil, err
		}

		err = s.orders.Save(ctx, o)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, order.ErrNumberTaken) {
			return nil, err
		}
		s.logger.Warn("order number collision, redrawing",
			zap.Int("number", number))
		lastErr = err
	}
	return nil, lastErr
}

// Get retrieves one order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List retrieves all orders, newest first
func (s *Service) List(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, nil
}

// SetStatus moves an order along the approval workflow. The transition
// table is enforced by the domain; the write is guarded by the status
// the caller read (compare-and-swap), so two admins racing on the same
// order produce one winner and one ConcurrencyConflict. Exactly one
// audit entry is written per successful mutation, before the email side
// effect; the approval confirmation email is best-effort.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, target order.Status, actor string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := o.Status
	if err := o.Transition(target); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, o, expected); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.ActionUpdateOrderStatus, actor,
		fmt.Sprintf("Order #%d: %s -> %s", o.Number, expected, o.Status))

	if o.Status == order.StatusApproved {
		s.notify(ctx, "order approved", func(nctx context.Context) error {
			return s.dispatcher.NotifyOrderApproved(nctx, o)
		})
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Delete hard-deletes an order regardless of its status
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDeleteOrder, actor,
		fmt.Sprintf("Order #%d deleted", o.Number))
	return nil
}

// Summary computes the dashboard analytics from the store on every
// call; nothing is cached or counted incrementally. Revenue excludes
// Rejected and Cancelled orders, the order count does not.
func (s *Service) Summary(ctx context.Context) (*SummaryResponse, error) {
	revenue, err := s.orders.SumTotalExcluding(ctx, order.StatusRejected, order.StatusCancelled)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.orders.CountByStatus(ctx, order.StatusPendingApproval)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		TotalRevenue:   revenue,
		TotalOrders:    totalOrders,
		PendingActions: pending,
	}, nil
}

// claimIdempotencyKey rejects a replayed checkout key. A guard that is
// down does not block checkout; only a confirmed replay does.
func (s *Service) claimIdempotencyKey(ctx context.Context, key string) error {
	if s.idempotency == nil || key == "" {
		return nil
	}

	claimed, err := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
	if err != nil {
		s.logger.Warn("checkout guard unavailable", zap.Error(err))
		return nil
	}
	if !claimed {
		return ErrDuplicateSubmission
	}
	return nil
}

// notify runs one send with a bounded timeout, detached from the
// request's cancellation. Failures are logged and dropped.
func (s *Service) notify(ctx context.Context, kind string, send func(context.Context) error) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	if err := send(nctx); err != nil {
		s.logger.Warn("notification send failed",
			zap.String("kind", kind),
			zap.Error(err))
	}
}
