package service

import (
	"context"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/google/uuid"
)

// CatalogService exposes read-only catalog browsing. Catalog writes are an
// external concern.
type CatalogService interface {
	ListProducts(ctx context.Context, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]domain.ProductView, int, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int) ([]domain.ProductView, int, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductView, error)
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

// ListProducts returns a page of active products
func (s *catalogService) ListProducts(ctx context.Context, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]domain.ProductView, int, error) {
	products, total, err := s.store.Products().List(ctx, page, pageSize, sortBy, sortOrder)
	if err != nil {
		return nil, 0, err
	}
	return toProductViews(products), total, nil
}

// SearchProducts returns active products matching the query
func (s *catalogService) SearchProducts(ctx context.Context, query string, page, pageSize int) ([]domain.ProductView, int, error) {
	products, total, err := s.store.Products().Search(ctx, query, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toProductViews(products), total, nil
}

// GetProduct returns one active product; inactive products are not found
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductView, error) {
	product, err := s.store.Products().FindActiveByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, &domain.NotFoundError{Resource: "product", ID: id.String()}
		}
		return nil, err
	}

	view := product.View()
	return &view, nil
}

func toProductViews(products []*domain.Product) []domain.ProductView {
	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views
}
