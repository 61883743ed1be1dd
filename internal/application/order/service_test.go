package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/order"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number int) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotalExcluding(ctx context.Context, excluded ...order.Status) (decimal.Decimal, error) {
	callArgs := make([]interface{}, 0, len(excluded)+1)
	callArgs = append(callArgs, ctx)
	for _, s := range excluded {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) GenerateNumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockRecorder is a mock implementation of audit.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, action audit.Action, actor, details string) {
	m.Called(ctx, action, actor, details)
}

// MockDispatcher is a mock implementation of notification.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) NotifyNewOrder(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDispatcher) NotifyOrderApproved(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDispatcher) NotifyNewSubscriber(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockDispatcher) SendWelcome(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockDispatcher) SendBroadcast(ctx context.Context, email, subject, message string) error {
	args := m.Called(ctx, email, subject, message)
	return args.Error(0)
}

func (m *MockDispatcher) SendContactMessage(ctx context.Context, name, email, message string) error {
	args := m.Called(ctx, name, email, message)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestService() (*Service, *MockOrderRepository, *MockRecorder, *MockDispatcher) {
	repo := new(MockOrderRepository)
	recorder := new(MockRecorder)
	dispatcher := new(MockDispatcher)
	service := NewService(repo, recorder, dispatcher, zap.NewNop())
	return service, repo, recorder, dispatcher
}

func validCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Customer: CustomerInput{
			Name:    "Jordan Reyes",
			Email:   "jordan@example.com",
			Phone:   "555-0101",
			Address: "12 Harbor Lane",
			City:    "Portsmouth",
			Zip:     "03801",
		},
		Items: []ItemInput{
			{Name: "Candle", Price: decimal.NewFromFloat(15.00), Quantity: 2},
			{Name: "Soap", Price: decimal.NewFromFloat(24.50), Quantity: 1},
		},
	}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.New(123456, order.Customer{
		Name:    "Jordan Reyes",
		Email:   "jordan@example.com",
		Phone:   "555-0101",
		Address: "12 Harbor Lane",
		City:    "Portsmouth",
		Zip:     "03801",
	}, []order.Item{
		{Name: "Candle", Price: decimal.NewFromFloat(15.00), Quantity: 2},
		{Name: "Soap", Price: decimal.NewFromFloat(24.50), Quantity: 1},
	})
	require.NoError(t, err)
	return o
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the total server-side and ignores the client total", func(t *testing.T) {
		service, repo, _, dispatcher := newTestService()

		req := validCreateRequest()
		bogus := decimal.NewFromFloat(0.01)
		req.Total = &bogus

		repo.On("GenerateNumber", mock.Anything).Return(123456, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Total.Equal(decimal.NewFromFloat(54.50)) &&
				o.Status == order.StatusPendingApproval &&
				o.Number == 123456
		})).Return(nil)
		dispatcher.On("NotifyNewOrder", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.Total.Equal(decimal.NewFromFloat(54.50)))
		assert.Equal(t, "Pending Approval", resp.Status)
		repo.AssertExpectations(t)
		dispatcher.AssertExpectations(t)
	})

	t.Run("succeeds even when the admin notification fails", func(t *testing.T) {
		service, repo, _, dispatcher := newTestService()

		repo.On("GenerateNumber", mock.Anything).Return(123456, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		dispatcher.On("NotifyNewOrder", mock.Anything, mock.Anything).Return(errors.New("email service down"))

		resp, err := service.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("redraws the number when a racing checkout claimed it", func(t *testing.T) {
		service, repo, _, dispatcher := newTestService()

		repo.On("GenerateNumber", mock.Anything).Return(123456, nil).Once()
		repo.On("GenerateNumber", mock.Anything).Return(654321, nil).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Number == 123456
		})).Return(order.ErrNumberTaken).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Number == 654321
		})).Return(nil).Once()
		dispatcher.On("NotifyNewOrder", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, 654321, resp.Number)
		repo.AssertExpectations(t)
	})

	t.Run("gives up after repeated number collisions", func(t *testing.T) {
		service, repo, _, dispatcher := newTestService()

		repo.On("GenerateNumber", mock.Anything).Return(123456, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(order.ErrNumberTaken)

		_, err := service.Create(ctx, validCreateRequest())
		assert.ErrorIs(t, err, order.ErrNumberTaken)
		repo.AssertNumberOfCalls(t, "Save", maxCheckoutAttempts)
		dispatcher.AssertNotCalled(t, "NotifyNewOrder", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty item list before touching the store", func(t *testing.T) {
		service, repo, _, _ := newTestService()
		repo.On("GenerateNumber", mock.Anything).Return(123456, nil)

		req := validCreateRequest()
		req.Items = nil

		_, err := service.Create(ctx, req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		service, repo, _, _ := newTestService()
		repo.On("GenerateNumber", mock.Anything).Return(123456, nil)

		req := validCreateRequest()
		req.Items[0].Quantity = 0

		_, err := service.Create(ctx, req)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("replayed idempotency key is rejected", func(t *testing.T) {
		service, repo, _, _ := newTestService()
		guard := new(MockIdempotencyStore)
		service.SetCheckoutGuard(guard, 10*time.Minute)

		guard.On("MarkProcessed", mock.Anything, "checkout-abc", 10*time.Minute).Return(false, nil)

		req := validCreateRequest()
		req.IdempotencyKey = "checkout-abc"

		_, err := service.Create(ctx, req)
		assert.ErrorIs(t, err, ErrDuplicateSubmission)
		repo.AssertNotCalled(t, "GenerateNumber", mock.Anything)
	})

	t.Run("guard outage does not block checkout", func(t *testing.T) {
		service, repo, _, dispatcher := newTestService()
		guard := new(MockIdempotencyStore)
		service.SetCheckoutGuard(guard, 10*time.Minute)

		guard.On("MarkProcessed", mock.Anything, "checkout-abc", 10*time.Minute).Return(false, errors.New("redis down"))
		repo.On("GenerateNumber", mock.Anything).Return(123456, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		dispatcher.On("NotifyNewOrder", mock.Anything, mock.Anything).Return(nil)

		req := validCreateRequest()
		req.IdempotencyKey = "checkout-abc"

		_, err := service.Create(ctx, req)
		require.NoError(t, err)
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approval writes the audit entry before the email", func(t *testing.T) {
		service, repo, recorder, dispatcher := newTestService()
		o := pendingOrder(t)

		var sequence []string
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, o, order.StatusPendingApproval).Return(nil)
		recorder.On("Record", mock.Anything, audit.ActionUpdateOrderStatus, "admin",
			"Order #123456: Pending Approval -> Approved").Run(func(args mock.Arguments) {
			sequence = append(sequence, "audit")
		}).Return()
		dispatcher.On("NotifyOrderApproved", mock.Anything, o).Run(func(args mock.Arguments) {
			sequence = append(sequence, "email")
		}).Return(nil)

		resp, err := service.SetStatus(ctx, o.ID, order.StatusApproved, "admin")
		require.NoError(t, err)
		assert.Equal(t, "Approved", resp.Status)
		assert.Equal(t, []string{"audit", "email"}, sequence)
		recorder.AssertNumberOfCalls(t, "Record", 1)
	})

	t.Run("approval succeeds even when the email fails", func(t *testing.T) {
		service, repo, recorder, dispatcher := newTestService()
		o := pendingOrder(t)

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, o, order.StatusPendingApproval).Return(nil)
		recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
		dispatcher.On("NotifyOrderApproved", mock.Anything, o).Return(errors.New("email service down"))

		resp, err := service.SetStatus(ctx, o.ID, order.StatusApproved, "admin")
		require.NoError(t, err)
		assert.Equal(t, "Approved", resp.Status)
	})

	t.Run("non-approval transitions send no email", func(t *testing.T) {
		service, repo, recorder, dispatcher := newTestService()
		o := pendingOrder(t)
		require.NoError(t, o.Transition(order.StatusApproved))

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, o, order.StatusApproved).Return(nil)
		recorder.On("Record", mock.Anything, audit.ActionUpdateOrderStatus, "admin",
			"Order #123456: Approved -> Shipped").Return()

		_, err := service.SetStatus(ctx, o.ID, order.StatusShipped, "admin")
		require.NoError(t, err)
		dispatcher.AssertNotCalled(t, "NotifyOrderApproved", mock.Anything, mock.Anything)
	})

	t.Run("illegal transition writes nothing", func(t *testing.T) {
		service, repo, recorder, _ := newTestService()
		o := pendingOrder(t)

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := service.SetStatus(ctx, o.ID, order.StatusShipped, "admin")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)

		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race surfaces as a conflict with no audit entry", func(t *testing.T) {
		service, repo, recorder, _ := newTestService()
		o := pendingOrder(t)

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("UpdateStatus", mock.Anything, o, order.StatusPendingApproval).Return(shared.ErrConcurrencyConflict)

		_, err := service.SetStatus(ctx, o.ID, order.StatusApproved, "admin")
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		service, repo, _, _ := newTestService()
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.SetStatus(ctx, id, order.StatusApproved, "admin")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes any status and records the action", func(t *testing.T) {
		service, repo, recorder, _ := newTestService()
		o := pendingOrder(t)
		require.NoError(t, o.Transition(order.StatusRejected))

		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("Delete", mock.Anything, o.ID).Return(nil)
		recorder.On("Record", mock.Anything, audit.ActionDeleteOrder, "admin", "Order #123456 deleted").Return()

		require.NoError(t, service.Delete(ctx, o.ID, "admin"))
		recorder.AssertExpectations(t)
	})

	t.Run("unknown order writes no audit entry", func(t *testing.T) {
		service, repo, recorder, _ := newTestService()
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, id, "admin")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Summary(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.On("SumTotalExcluding", mock.Anything, order.StatusRejected, order.StatusCancelled).
		Return(decimal.NewFromFloat(54.50), nil)
	repo.On("CountAll", mock.Anything).Return(int64(3), nil)
	repo.On("CountByStatus", mock.Anything, order.StatusPendingApproval).Return(int64(1), nil)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromFloat(54.50)))
	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, int64(1), summary.PendingActions)
}

func TestService_List(t *testing.T) {
	service, repo, _, _ := newTestService()
	ctx := context.Background()

	o := pendingOrder(t)
	repo.On("FindAll", mock.Anything).Return([]order.Order{*o}, nil)

	orders, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 123456, orders[0].Number)
}
