package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/catalog"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService implements the admin category operations
type CategoryService struct {
	categories catalog.CategoryRepository
	recorder   audit.Recorder
	logger     *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categories catalog.CategoryRepository, recorder audit.Recorder, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		recorder:   recorder,
		logger:     logger,
	}
}

// Create adds a new category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest, actor string) (*CategoryResponse, error) {
	existing, err := s.categories.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	c, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.ActionCreateCategory, actor,
		fmt.Sprintf("Category %q created", c.Name))

	resp := ToCategoryResponse(c)
	return &resp, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// Delete removes a category. Products keep their category label; the
// storefront simply stops offering it as a filter.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDeleteCategory, actor,
		fmt.Sprintf("Category %q deleted", c.Name))
	return nil
}
