package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Announcer broadcasts a message to every newsletter subscriber.
// ProductService uses it for best-effort new-arrival announcements.
type Announcer interface {
	Announce(ctx context.Context, subject, message, actor string) error
}

// ProductService implements the admin product catalog operations
type ProductService struct {
	products        catalog.ProductRepository
	recorder        audit.Recorder
	announcer       Announcer
	announceTimeout time.Duration
	logger          *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, recorder audit.Recorder, logger *zap.Logger) *ProductService {
	return &ProductService{
		products:        products,
		recorder:        recorder,
		announceTimeout: 30 * time.Second,
		logger:          logger,
	}
}

// SetAnnouncer enables new-arrival announcements to newsletter
// subscribers on product creation
func (s *ProductService) SetAnnouncer(a Announcer) {
	s.announcer = a
}

// Create adds a new product to the catalog. Subscribers are notified
// best-effort; a failed announcement never fails the creation.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, actor string) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}
	p.SetCategory(req.Category)
	p.SetImageURL(req.ImageURL)
	if req.InStock != nil {
		p.InStock = *req.InStock
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.ActionCreateProduct, actor,
		fmt.Sprintf("Product %q created", p.Name))

	s.announceNewArrival(ctx, p)

	resp := ToProductResponse(p)
	return &resp, nil
}

// Get retrieves one product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// List retrieves all products
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListByCategory retrieves the products of one category
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]ProductResponse, error) {
	products, err := s.products.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Update replaces the mutable fields of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, req.Description, req.Price, req.InStock); err != nil {
		return nil, err
	}
	p.SetCategory(req.Category)
	p.SetImageURL(req.ImageURL)

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := ToProductResponse(p)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDeleteProduct, actor,
		fmt.Sprintf("Product %q deleted", p.Name))
	return nil
}

// announceNewArrival dispatches the broadcast on its own goroutine,
// detached from the request's cancellation, so a slow mail provider
// cannot hold the admin response hostage
func (s *ProductService) announceNewArrival(ctx context.Context, p *catalog.Product) {
	if s.announcer == nil {
		return
	}

	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.announceTimeout)
	subject := fmt.Sprintf("New arrival: %s", p.Name)
	message := fmt.Sprintf("%s is now available in our store for ₹%s.", p.Name, p.Price.StringFixed(2))

	go func() {
		defer cancel()
		if err := s.announcer.Announce(actx, subject, message, "System"); err != nil {
			s.logger.Warn("new arrival announcement failed",
				zap.String("product", p.Name),
				zap.Error(err))
		}
	}()
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
