package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. Orders are
// append-mostly: created pending inside the checkout transaction, completed
// in the same transaction, and never mutated thereafter.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItem(ctx context.Context, item *domain.OrderItem) error
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, change decimal.Decimal) error
	FindByID(ctx context.Context, identity domain.Identity, id uuid.UUID) (*domain.Order, error)
	ListByIdentity(ctx context.Context, identity domain.Identity, status domain.OrderStatus) ([]*domain.Order, error)
}

type orderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db DBTX) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order using parameterized queries
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, identity, status, total_amount, amount_paid, change_amount, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.Identity,
		order.Status,
		order.TotalAmount,
		order.AmountPaid,
		order.ChangeAmount,
		order.CreatedAt,
		order.CompletedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// CreateItem inserts an order line with its product snapshot. The subtotal
// is stored as computed at creation, not recomputed on later reads.
func (r *orderRepository) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.OrderID,
		item.ProductID,
		item.ProductName,
		item.ProductPrice,
		item.Quantity,
		item.Subtotal,
		item.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}

	return nil
}

// MarkCompleted transitions a pending order to completed with its change
// amount and completion timestamp
func (r *orderRepository) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, change decimal.Decimal) error {
	query := `
		UPDATE orders
		SET status = $2, completed_at = $3, change_amount = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.ExecContext(ctx, query, id, domain.OrderStatusCompleted, completedAt, change, domain.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// FindByID retrieves one of the identity's orders with its items
func (r *orderRepository) FindByID(ctx context.Context, identity domain.Identity, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, identity, status, total_amount, amount_paid, change_amount, created_at, completed_at
		FROM orders
		WHERE id = $1 AND identity = $2
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id, identity).Scan(
		&order.ID,
		&order.Identity,
		&order.Status,
		&order.TotalAmount,
		&order.AmountPaid,
		&order.ChangeAmount,
		&order.CreatedAt,
		&order.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	items, err := r.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// ListByIdentity returns the identity's order history, newest first, with an
// optional status filter
func (r *orderRepository) ListByIdentity(ctx context.Context, identity domain.Identity, status domain.OrderStatus) ([]*domain.Order, error) {
	query := `
		SELECT id, identity, status, total_amount, amount_paid, change_amount, created_at, completed_at
		FROM orders
		WHERE identity = $1
	`
	args := []any{identity}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.Identity,
			&order.Status,
			&order.TotalAmount,
			&order.AmountPaid,
			&order.ChangeAmount,
			&order.CreatedAt,
			&order.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		items, err := r.listItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []*domain.OrderItem{}
	for rows.Next() {
		item := &domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&item.Subtotal,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
