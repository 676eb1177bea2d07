package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationError signals malformed or out-of-range input. Caller-correctable,
// never retried internally.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError signals that a referenced product or cart item is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// EmptyCartError signals a checkout attempt against a cart with no
// active-product items.
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty, add items before checkout"
}

// InsufficientPaymentError carries the shortage so the caller can correct
// the tendered amount in one round-trip.
type InsufficientPaymentError struct {
	Required decimal.Decimal
	Provided decimal.Decimal
	Shortage decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment, short by %s", FormatAmount(e.Shortage))
}

// StockShortfall describes one product that cannot be fulfilled.
type StockShortfall struct {
	ProductID uuid.UUID `json:"product_id"`
	Product   string    `json:"product"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// InsufficientStockError lists every short product, not just the first,
// so the caller can fix all lines at once.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.Shortfalls))
}

// ConflictError signals a stock race detected inside the transaction. The
// transaction has been rolled back in full; retry policy is the caller's.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "concurrent update conflict, retry the operation"
	}
	return e.Message
}
