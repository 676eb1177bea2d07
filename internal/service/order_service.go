package service

import (
	"context"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService exposes an identity's order history.
type OrderService interface {
	ListOrders(ctx context.Context, identity domain.Identity, status domain.OrderStatus) ([]domain.OrderView, error)
	GetOrder(ctx context.Context, identity domain.Identity, id uuid.UUID) (*domain.OrderView, error)
}

type orderService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(store repository.Store, logger *zap.Logger) OrderService {
	return &orderService{store: store, logger: logger}
}

// ListOrders returns the identity's orders newest first, optionally filtered
// by status
func (s *orderService) ListOrders(ctx context.Context, identity domain.Identity, status domain.OrderStatus) ([]domain.OrderView, error) {
	orders, err := s.store.Orders().ListByIdentity(ctx, identity, status)
	if err != nil {
		return nil, err
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, order.View())
	}
	return views, nil
}

// GetOrder returns one of the identity's orders with its items
func (s *orderService) GetOrder(ctx context.Context, identity domain.Identity, id uuid.UUID) (*domain.OrderView, error) {
	order, err := s.store.Orders().FindByID(ctx, identity, id)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return nil, &domain.NotFoundError{Resource: "order", ID: id.String()}
		}
		return nil, err
	}

	view := order.View()
	return &view, nil
}
