package service

import (
	"context"
	"fmt"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService defines the interface for cart business logic. Every operation
// returns a fresh snapshot so the caller always sees the cart it just changed.
type CartService interface {
	GetCart(ctx context.Context, identity domain.Identity) (*domain.CartSnapshot, error)
	AddItem(ctx context.Context, identity domain.Identity, productID uuid.UUID, quantity int) (*domain.CartSnapshot, error)
	UpdateItem(ctx context.Context, identity domain.Identity, itemID uuid.UUID, quantity int) (*domain.CartSnapshot, error)
	RemoveItem(ctx context.Context, identity domain.Identity, itemID uuid.UUID) (*domain.CartSnapshot, error)
	Clear(ctx context.Context, identity domain.Identity) (*domain.CartSnapshot, error)
}

type cartService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(store repository.Store, logger *zap.Logger) CartService {
	return &cartService{store: store, logger: logger}
}

// GetCart returns the identity's cart, creating an empty one on first access
func (s *cartService) GetCart(ctx context.Context, identity domain.Identity) (*domain.CartSnapshot, error) {
	cart, err := s.loadCart(ctx, identity)
	if err != nil {
		return nil, err
	}
	return cart.Snapshot(), nil
}

// AddItem puts a product in the cart; if a line for that product already
// exists its quantity increases by the requested amount instead of
// duplicating the row
func (s *cartService) AddItem(ctx context.Context, identity domain.Identity, productID uuid.UUID, quantity int) (*domain.CartSnapshot, error) {
	if quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "must be a positive integer"}
	}

	product, err := s.store.Products().FindActiveByID(ctx, productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, &domain.NotFoundError{Resource: "product", ID: productID.String()}
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	cart, err := s.store.Carts().GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.store.Carts().UpsertItem(ctx, cart.ID, product.ID, quantity); err != nil {
		return nil, err
	}

	s.logger.Info("Cart item added",
		zap.String("identity", string(identity)),
		zap.String("product", product.Name),
		zap.Int("quantity", quantity),
	)

	return s.refresh(ctx, cart)
}

// UpdateItem overwrites a line's quantity; quantities below one are rejected
func (s *cartService) UpdateItem(ctx context.Context, identity domain.Identity, itemID uuid.UUID, quantity int) (*domain.CartSnapshot, error) {
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	cart, err := s.store.Carts().GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.store.Carts().UpdateItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		if err == repository.ErrCartItemNotFound {
			return nil, &domain.NotFoundError{Resource: "cart item", ID: itemID.String()}
		}
		return nil, err
	}

	return s.refresh(ctx, cart)
}

// RemoveItem deletes a line from the cart
func (s *cartService) RemoveItem(ctx context.Context, identity domain.Identity, itemID uuid.UUID) (*domain.CartSnapshot, error) {
	cart, err := s.store.Carts().GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.store.Carts().RemoveItem(ctx, cart.ID, itemID); err != nil {
		if err == repository.ErrCartItemNotFound {
			return nil, &domain.NotFoundError{Resource: "cart item", ID: itemID.String()}
		}
		return nil, err
	}

	return s.refresh(ctx, cart)
}

// Clear removes every line; a no-op on an empty cart
func (s *cartService) Clear(ctx context.Context, identity domain.Identity) (*domain.CartSnapshot, error) {
	cart, err := s.store.Carts().GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.store.Carts().Clear(ctx, cart.ID); err != nil {
		return nil, err
	}

	cart.Items = nil
	return cart.Snapshot(), nil
}

func (s *cartService) loadCart(ctx context.Context, identity domain.Identity) (*domain.Cart, error) {
	cart, err := s.store.Carts().GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	items, err := s.store.Carts().ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return cart, nil
}

func (s *cartService) refresh(ctx context.Context, cart *domain.Cart) (*domain.CartSnapshot, error) {
	items, err := s.store.Carts().ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return cart.Snapshot(), nil
}
