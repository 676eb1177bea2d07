package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the immutable record of a completed transaction. Completed
// orders satisfy amount_paid >= total_amount and
// change_amount = amount_paid - total_amount.
type Order struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Identity     Identity        `json:"identity" db:"identity"`
	Status       OrderStatus     `json:"status" db:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"total_amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	ChangeAmount decimal.Decimal `json:"change_amount" db:"change_amount"`
	Items        []*OrderItem    `json:"items"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at" db:"completed_at"`
}

// CanComplete reports whether payment covers the order total.
func (o *Order) CanComplete() bool {
	return o.AmountPaid.GreaterThanOrEqual(o.TotalAmount)
}

// CalculateChange returns the change owed, never negative.
func (o *Order) CalculateChange() decimal.Decimal {
	if o.CanComplete() {
		return o.AmountPaid.Sub(o.TotalAmount)
	}
	return decimal.Zero
}

// TotalItems is the sum of quantities across order lines.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// OrderItem stores a snapshot of product name and price at order time,
// decoupled from the live product. Subtotal is computed once at creation
// and persisted for audit stability.
type OrderItem struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OrderID      uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price" db:"product_price"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// OrderItemView is the serialized form of an order line.
type OrderItemView struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	ProductPrice      string `json:"product_price"`
	FormattedPrice    string `json:"formatted_price"`
	Quantity          int    `json:"quantity"`
	Subtotal          string `json:"subtotal"`
	FormattedSubtotal string `json:"formatted_subtotal"`
}

// OrderView is the serialized form of an order.
type OrderView struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	Items           []OrderItemView `json:"items"`
	TotalAmount     string          `json:"total_amount"`
	FormattedTotal  string          `json:"formatted_total"`
	AmountPaid      string          `json:"amount_paid"`
	FormattedPaid   string          `json:"formatted_paid"`
	ChangeAmount    string          `json:"change_amount"`
	FormattedChange string          `json:"formatted_change"`
	TotalItems      int             `json:"total_items"`
	CreatedAt       string          `json:"created_at"`
	CompletedAt     string          `json:"completed_at,omitempty"`
}

// PaymentBreakdown accompanies a completed checkout.
type PaymentBreakdown struct {
	TotalAmount     string `json:"total_amount"`
	FormattedTotal  string `json:"formatted_total"`
	AmountPaid      string `json:"amount_paid"`
	FormattedPaid   string `json:"formatted_paid"`
	Change          string `json:"change"`
	FormattedChange string `json:"formatted_change"`
}

// OrderReceipt is the success payload of a checkout.
type OrderReceipt struct {
	Order   OrderView        `json:"order"`
	Payment PaymentBreakdown `json:"payment_details"`
}

// View converts an order to its serialized form.
func (o *Order) View() OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			ID:                item.ID.String(),
			ProductID:         item.ProductID.String(),
			ProductName:       item.ProductName,
			ProductPrice:      item.ProductPrice.StringFixed(2),
			FormattedPrice:    FormatAmount(item.ProductPrice),
			Quantity:          item.Quantity,
			Subtotal:          item.Subtotal.StringFixed(2),
			FormattedSubtotal: FormatAmount(item.Subtotal),
		})
	}

	view := OrderView{
		ID:              o.ID.String(),
		Status:          string(o.Status),
		Items:           items,
		TotalAmount:     o.TotalAmount.StringFixed(2),
		FormattedTotal:  FormatAmount(o.TotalAmount),
		AmountPaid:      o.AmountPaid.StringFixed(2),
		FormattedPaid:   FormatAmount(o.AmountPaid),
		ChangeAmount:    o.ChangeAmount.StringFixed(2),
		FormattedChange: FormatAmount(o.ChangeAmount),
		TotalItems:      o.TotalItems(),
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.CompletedAt != nil {
		view.CompletedAt = o.CompletedAt.UTC().Format(time.RFC3339)
	}
	return view
}

// Receipt builds the checkout success payload with its payment breakdown.
func (o *Order) Receipt() *OrderReceipt {
	return &OrderReceipt{
		Order: o.View(),
		Payment: PaymentBreakdown{
			TotalAmount:     o.TotalAmount.StringFixed(2),
			FormattedTotal:  FormatAmount(o.TotalAmount),
			AmountPaid:      o.AmountPaid.StringFixed(2),
			FormattedPaid:   FormatAmount(o.AmountPaid),
			Change:          o.ChangeAmount.StringFixed(2),
			FormattedChange: FormatAmount(o.ChangeAmount),
		},
	}
}
