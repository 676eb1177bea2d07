package service

import (
	"context"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxPaymentAmount is the sane upper bound on a single tendered payment.
var MaxPaymentAmount = decimal.RequireFromString("100000000.00")

// CheckoutService turns an identity's cart into a completed order. The whole
// sequence runs in one database transaction: either every step commits or
// none does, so a failed attempt leaves no order, no order items and no
// stock mutation behind.
type CheckoutService interface {
	Checkout(ctx context.Context, identity domain.Identity, amountPaid decimal.Decimal) (*domain.OrderReceipt, error)
}

type checkoutService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(store repository.Store, logger *zap.Logger) CheckoutService {
	return &checkoutService{store: store, logger: logger}
}

// Checkout validates payment and stock, snapshots the cart into an immutable
// order, decrements inventory and clears the cart, all atomically.
func (s *checkoutService) Checkout(ctx context.Context, identity domain.Identity, amountPaid decimal.Decimal) (*domain.OrderReceipt, error) {
	if amountPaid.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "amount_paid", Message: "must be a positive amount"}
	}
	if amountPaid.GreaterThan(MaxPaymentAmount) {
		return nil, &domain.ValidationError{Field: "amount_paid", Message: "exceeds the maximum accepted payment"}
	}

	var receipt *domain.OrderReceipt

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().GetOrCreate(ctx, identity)
		if err != nil {
			return err
		}

		items, err := tx.Carts().ListItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return &domain.EmptyCartError{}
		}

		// Lock the product rows first; prices and stock read after this
		// point cannot move until the transaction ends.
		ids := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		locked, err := tx.Products().LockForUpdate(ctx, ids)
		if err != nil {
			return err
		}

		// Re-resolve each line against its locked product. Lines whose
		// product vanished or went inactive since the read are dropped,
		// matching the read-time filtering of cart totals.
		lines := items[:0]
		total := decimal.Zero
		for _, item := range items {
			product, ok := locked[item.ProductID]
			if !ok || !product.IsActive {
				continue
			}
			item.Product = product
			total = total.Add(item.Subtotal())
			lines = append(lines, item)
		}
		if len(lines) == 0 {
			return &domain.EmptyCartError{}
		}

		if amountPaid.LessThan(total) {
			return &domain.InsufficientPaymentError{
				Required: total,
				Provided: amountPaid,
				Shortage: total.Sub(amountPaid),
			}
		}

		// Collect every stock violation, not just the first, so the caller
		// can correct all lines in one round-trip.
		shortfalls := []domain.StockShortfall{}
		for _, line := range lines {
			if !line.Product.CanFulfill(line.Quantity) {
				shortfalls = append(shortfalls, domain.StockShortfall{
					ProductID: line.ProductID,
					Product:   line.Product.Name,
					Requested: line.Quantity,
					Available: line.Product.StockQuantity,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}

		now := time.Now()
		order := &domain.Order{
			ID:           uuid.New(),
			Identity:     identity,
			Status:       domain.OrderStatusPending,
			TotalAmount:  total,
			AmountPaid:   amountPaid,
			ChangeAmount: decimal.Zero,
			CreatedAt:    now,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		for _, line := range lines {
			item := &domain.OrderItem{
				ID:           uuid.New(),
				OrderID:      order.ID,
				ProductID:    line.ProductID,
				ProductName:  line.Product.Name,
				ProductPrice: line.Product.Price,
				Quantity:     line.Quantity,
				Subtotal:     line.Subtotal(),
				CreatedAt:    now,
			}
			if err := tx.Orders().CreateItem(ctx, item); err != nil {
				return err
			}
			if err := tx.Products().ReduceStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}

		completedAt := time.Now()
		change := amountPaid.Sub(total)
		if err := tx.Orders().MarkCompleted(ctx, order.ID, completedAt, change); err != nil {
			return err
		}
		order.Status = domain.OrderStatusCompleted
		order.CompletedAt = &completedAt
		order.ChangeAmount = change

		if err := tx.Carts().Clear(ctx, cart.ID); err != nil {
			return err
		}

		receipt = order.Receipt()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order completed",
		zap.String("identity", string(identity)),
		zap.String("order_id", receipt.Order.ID),
		zap.String("total", receipt.Payment.TotalAmount),
		zap.String("paid", receipt.Payment.AmountPaid),
		zap.String("change", receipt.Payment.Change),
	)

	return receipt, nil
}
