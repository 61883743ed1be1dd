package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/catalog"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecorder is a mock implementation of audit.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, action audit.Action, actor, details string) {
	m.Called(ctx, action, actor, details)
}

// MockAnnouncer is a mock implementation of Announcer
type MockAnnouncer struct {
	mock.Mock
}

func (m *MockAnnouncer) Announce(ctx context.Context, subject, message, actor string) error {
	args := m.Called(ctx, subject, message, actor)
	return args.Error(0)
}

func validProductRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Coconut Bowl",
		Description: "Hand-carved coconut shell bowl",
		Price:       decimal.NewFromFloat(12.99),
		Category:    "kitchen",
		ImageURL:    "https://cdn.example.com/coconut-bowl.jpg",
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("saves, audits and announces", func(t *testing.T) {
		repo := new(MockProductRepository)
		recorder := new(MockRecorder)
		announcer := new(MockAnnouncer)
		service := NewProductService(repo, recorder, zap.NewNop())
		service.SetAnnouncer(announcer)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.Name == "Coconut Bowl" && p.InStock &&
				p.CategoryID != nil && *p.CategoryID == "kitchen"
		})).Return(nil)
		recorder.On("Record", mock.Anything, audit.ActionCreateProduct, "admin",
			`Product "Coconut Bowl" created`).Return()
		announced := make(chan struct{})
		announcer.On("Announce", mock.Anything, "New arrival: Coconut Bowl",
			mock.Anything, "System").
			Run(func(mock.Arguments) { close(announced) }).
			Return(nil)

		resp, err := service.Create(ctx, validProductRequest(), "admin")
		require.NoError(t, err)
		assert.Equal(t, "kitchen", resp.Category)

		// The announcement runs off the request goroutine
		select {
		case <-announced:
		case <-time.After(time.Second):
			t.Fatal("announcement was never dispatched")
		}
		repo.AssertExpectations(t)
		recorder.AssertExpectations(t)
		announcer.AssertExpectations(t)
	})

	t.Run("announcement failure does not fail creation", func(t *testing.T) {
		repo := new(MockProductRepository)
		recorder := new(MockRecorder)
		announcer := new(MockAnnouncer)
		service := NewProductService(repo, recorder, zap.NewNop())
		service.SetAnnouncer(announcer)

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
		announced := make(chan struct{})
		announcer.On("Announce", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { close(announced) }).
			Return(errors.New("email service down"))

		_, err := service.Create(ctx, validProductRequest(), "admin")
		require.NoError(t, err)

		select {
		case <-announced:
		case <-time.After(time.Second):
			t.Fatal("announcement was never dispatched")
		}
	})

	t.Run("works without an announcer", func(t *testing.T) {
		repo := new(MockProductRepository)
		recorder := new(MockRecorder)
		service := NewProductService(repo, recorder, zap.NewNop())

		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := service.Create(ctx, validProductRequest(), "admin")
		require.NoError(t, err)
	})

	t.Run("invalid price writes nothing", func(t *testing.T) {
		repo := new(MockProductRepository)
		recorder := new(MockRecorder)
		service := NewProductService(repo, recorder, zap.NewNop())

		req := validProductRequest()
		req.Price = decimal.NewFromInt(-1)

		_, err := service.Create(ctx, req, "admin")
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	recorder := new(MockRecorder)
	service := NewProductService(repo, recorder, zap.NewNop())

	p, err := catalog.NewProduct("Coconut Bowl", "old", decimal.NewFromInt(10))
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	resp, err := service.Update(ctx, p.ID, UpdateProductRequest{
		Name:        "Coconut Bowl Set",
		Description: "set of two",
		Price:       decimal.NewFromInt(18),
		Category:    "kitchen",
		InStock:     false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Coconut Bowl Set", resp.Name)
	assert.False(t, resp.InStock)
	recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and audits", func(t *testing.T) {
		repo := new(MockProductRepository)
		recorder := new(MockRecorder)
		service := NewProductService(repo, recorder, zap.NewNop())

		p, err := catalog.NewProduct("Coconut Bowl", "", decimal.NewFromInt(10))
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("Delete", mock.Anything, p.ID).Return(nil)
		recorder.On("Record", mock.Anything, audit.ActionDeleteProduct, "admin",
			`Product "Coconut Bowl" deleted`).Return()

		require.NoError(t, service.Delete(ctx, p.ID, "admin"))
		recorder.AssertExpectations(t)
	})

	t.Run("unknown product writes no audit entry", func(t *testing.T) {
		repo := new(MockProductRepository)
		recorder := new(MockRecorder)
		service := NewProductService(repo, recorder, zap.NewNop())
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, id, "admin")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and audits", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		recorder := new(MockRecorder)
		service := NewCategoryService(repo, recorder, zap.NewNop())

		repo.On("FindByName", mock.Anything, "Kitchen").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		recorder.On("Record", mock.Anything, audit.ActionCreateCategory, "admin",
			`Category "Kitchen" created`).Return()

		resp, err := service.Create(ctx, CreateCategoryRequest{Name: "Kitchen", Description: "Kitchen and dining"}, "admin")
		require.NoError(t, err)
		assert.Equal(t, "Kitchen", resp.Name)
		recorder.AssertExpectations(t)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		recorder := new(MockRecorder)
		service := NewCategoryService(repo, recorder, zap.NewNop())

		existing, err := catalog.NewCategory("Kitchen", "")
		require.NoError(t, err)
		repo.On("FindByName", mock.Anything, "Kitchen").Return(existing, nil)

		_, err = service.Create(ctx, CreateCategoryRequest{Name: "Kitchen"}, "admin")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	recorder := new(MockRecorder)
	service := NewCategoryService(repo, recorder, zap.NewNop())

	c, err := catalog.NewCategory("Kitchen", "")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	repo.On("Delete", mock.Anything, c.ID).Return(nil)
	recorder.On("Record", mock.Anything, audit.ActionDeleteCategory, "admin",
		`Category "Kitchen" deleted`).Return()

	require.NoError(t, service.Delete(ctx, c.ID, "admin"))
	recorder.AssertExpectations(t)
}
