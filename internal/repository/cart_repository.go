package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart data access. Carts are
// created lazily per identity and never deleted; items are upserted so the
// (cart, product) uniqueness constraint holds.
type CartRepository interface {
	GetOrCreate(ctx context.Context, identity domain.Identity) (*domain.Cart, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, error)
	FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*domain.CartItem, error)
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type cartRepository struct {
	db DBTX
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db DBTX) CartRepository {
	return &cartRepository{db: db}
}

// GetOrCreate returns the identity's cart, creating an empty one on first
// access. The upsert makes the operation idempotent under concurrent calls.
func (r *cartRepository) GetOrCreate(ctx context.Context, identity domain.Identity) (*domain.Cart, error) {
	query := `
		INSERT INTO carts (id, identity, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (identity) DO UPDATE SET identity = EXCLUDED.identity
		RETURNING id, identity, created_at, updated_at
	`

	cart := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), identity, time.Now()).Scan(
		&cart.ID,
		&cart.Identity,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

// ListItems returns the cart's lines joined to their live products. Lines
// whose product has gone inactive are filtered out at read time so they
// cannot inflate a total.
func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]*domain.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.added_at, ci.updated_at,
		       p.id, p.name, p.description, p.price, p.image_url, p.stock_quantity,
		       p.is_active, p.total_ordered, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1 AND p.is_active = TRUE
		ORDER BY ci.added_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*domain.CartItem{}
	for rows.Next() {
		item := &domain.CartItem{Product: &domain.Product{}}
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.AddedAt,
			&item.UpdatedAt,
			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.Price,
			&item.Product.ImageURL,
			&item.Product.StockQuantity,
			&item.Product.IsActive,
			&item.Product.TotalOrdered,
			&item.Product.CreatedAt,
			&item.Product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// FindItem retrieves one line of the given cart; items belonging to other
// carts are not visible
func (r *cartRepository) FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*domain.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, added_at, updated_at
		FROM cart_items
		WHERE id = $1 AND cart_id = $2
	`

	item := &domain.CartItem{}
	err := r.db.QueryRowContext(ctx, query, itemID, cartID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.AddedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

// UpsertItem inserts a new line or, when one already exists for the product,
// increments its quantity by the requested amount in a single statement.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, added_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New(), cartID, productID, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// UpdateItemQuantity overwrites a line's quantity
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND cart_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, itemID, cartID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes a line from the cart
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`

	result, err := r.db.ExecContext(ctx, query, itemID, cartID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Clear removes all lines; a no-op on an empty cart
func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := r.db.ExecContext(ctx, query, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
