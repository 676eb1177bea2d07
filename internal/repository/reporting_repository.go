package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WindowSummary aggregates completed orders inside a day window.
type WindowSummary struct {
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// ProductSales is one row of the per-product aggregation over order items.
type ProductSales struct {
	ProductID     uuid.UUID
	Name          string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
	OrderCount    int
}

// NeverOrderedProduct is an active product absent from the window's sales.
type NeverOrderedProduct struct {
	ID            uuid.UUID
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// DateBucket is one calendar day of completed-order activity.
type DateBucket struct {
	Date     time.Time
	Orders   int
	Revenue  decimal.Decimal
	AvgOrder decimal.Decimal
}

// ProductPerformance carries all-history sales figures for one active
// product. TotalSold reads the cumulative total_ordered counter.
type ProductPerformance struct {
	ID            uuid.UUID
	Name          string
	Price         decimal.Decimal
	StockQuantity int
	TotalSold     int
	OrdersCount   int
	Revenue       decimal.Decimal
}

// ReportingRepository is the read side over completed orders. All queries
// are lock-free and safe to run against a replica.
type ReportingRepository interface {
	Summary(ctx context.Context, since time.Time) (*WindowSummary, error)
	ProductSales(ctx context.Context, since time.Time, order SortOrder, limit int) ([]*ProductSales, error)
	NeverOrdered(ctx context.Context, since time.Time, limit int) ([]*NeverOrderedProduct, error)
	OrderFrequency(ctx context.Context, since time.Time) ([]*DateBucket, error)
	ProductPerformance(ctx context.Context) ([]*ProductPerformance, error)
}

type reportingRepository struct {
	db DBTX
}

// NewReportingRepository creates a new instance of ReportingRepository
func NewReportingRepository(db DBTX) ReportingRepository {
	return &reportingRepository{db: db}
}

// Summary counts completed orders in the window and sums their totals.
// SUM and AVG run over numeric columns so no floating point is involved.
func (r *reportingRepository) Summary(ctx context.Context, since time.Time) (*WindowSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount), 0),
		       COALESCE(ROUND(AVG(total_amount), 2), 0)
		FROM orders
		WHERE status = $1 AND completed_at >= $2
	`

	summary := &WindowSummary{}
	err := r.db.QueryRowContext(ctx, query, domain.OrderStatusCompleted, since).Scan(
		&summary.TotalOrders,
		&summary.TotalRevenue,
		&summary.AverageOrderValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize orders: %w", err)
	}

	return summary, nil
}

// ProductSales groups order items of completed in-window orders by product,
// aggregating quantity, revenue and distinct order count
func (r *reportingRepository) ProductSales(ctx context.Context, since time.Time, order SortOrder, limit int) ([]*ProductSales, error) {
	if order != SortOrderAsc && order != SortOrderDesc {
		order = SortOrderDesc
	}

	query := fmt.Sprintf(`
		SELECT oi.product_id, oi.product_name,
		       SUM(oi.quantity) AS total_quantity,
		       SUM(oi.subtotal) AS total_revenue,
		       COUNT(DISTINCT oi.order_id) AS order_count
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = $1 AND o.completed_at >= $2
		GROUP BY oi.product_id, oi.product_name
		ORDER BY total_quantity %s
		LIMIT $3
	`, order)

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusCompleted, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate product sales: %w", err)
	}
	defer rows.Close()

	stats := []*ProductSales{}
	for rows.Next() {
		row := &ProductSales{}
		err := rows.Scan(&row.ProductID, &row.Name, &row.TotalQuantity, &row.TotalRevenue, &row.OrderCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product sales: %w", err)
		}
		stats = append(stats, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product sales: %w", err)
	}

	return stats, nil
}

// NeverOrdered returns active products whose id does not appear among the
// window's completed order items, oldest first
func (r *reportingRepository) NeverOrdered(ctx context.Context, since time.Time, limit int) ([]*NeverOrderedProduct, error) {
	query := `
		SELECT p.id, p.name, p.price, p.stock_quantity
		FROM products p
		WHERE p.is_active = TRUE
		  AND NOT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE oi.product_id = p.id AND o.status = $1 AND o.completed_at >= $2
		  )
		ORDER BY p.created_at ASC, p.id ASC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusCompleted, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find never-ordered products: %w", err)
	}
	defer rows.Close()

	products := []*NeverOrderedProduct{}
	for rows.Next() {
		p := &NeverOrderedProduct{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan never-ordered product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating never-ordered products: %w", err)
	}

	return products, nil
}

// OrderFrequency buckets completed orders by the calendar date of their
// completion timestamp, ascending, forming a chartable time series
func (r *reportingRepository) OrderFrequency(ctx context.Context, since time.Time) ([]*DateBucket, error) {
	query := `
		SELECT completed_at::date AS day,
		       COUNT(*),
		       SUM(total_amount),
		       ROUND(AVG(total_amount), 2)
		FROM orders
		WHERE status = $1 AND completed_at >= $2
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order frequency: %w", err)
	}
	defer rows.Close()

	buckets := []*DateBucket{}
	for rows.Next() {
		b := &DateBucket{}
		if err := rows.Scan(&b.Date, &b.Orders, &b.Revenue, &b.AvgOrder); err != nil {
			return nil, fmt.Errorf("failed to scan date bucket: %w", err)
		}
		buckets = append(buckets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating date buckets: %w", err)
	}

	return buckets, nil
}

// ProductPerformance loads every active product with its all-history sales
// figures: total_sold from the cumulative counter, revenue and order count
// from completed order items
func (r *reportingRepository) ProductPerformance(ctx context.Context) ([]*ProductPerformance, error) {
	query := `
		SELECT p.id, p.name, p.price, p.stock_quantity, p.total_ordered,
		       COUNT(DISTINCT o.id) AS orders_count,
		       COALESCE(SUM(oi.subtotal), 0) AS revenue
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		LEFT JOIN orders o ON o.id = oi.order_id AND o.status = $1
		WHERE p.is_active = TRUE
		GROUP BY p.id, p.name, p.price, p.stock_quantity, p.total_ordered
		ORDER BY p.total_ordered DESC, p.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.OrderStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to load product performance: %w", err)
	}
	defer rows.Close()

	products := []*ProductPerformance{}
	for rows.Next() {
		p := &ProductPerformance{}
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.StockQuantity, &p.TotalSold, &p.OrdersCount, &p.Revenue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product performance: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product performance: %w", err)
	}

	return products, nil
}
