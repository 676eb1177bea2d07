package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Identity is the user or session a cart or order belongs to.
type Identity string

// AnonymousIdentity is the explicit named identity used when no identity
// token accompanies a request (degraded/demo mode). It is a regular row in
// the carts table, not a magic primary key.
const AnonymousIdentity Identity = "anonymous"

// Cart is the per-identity shopping cart aggregate. Items carry the live
// product so subtotals always reflect current catalog prices.
type Cart struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Identity  Identity    `json:"identity" db:"identity"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// CartItem is one line in a cart. At most one exists per (cart, product)
// pair; re-adding a product increments Quantity instead.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Product   *Product  `json:"product"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Subtotal is computed on read from the live product price, never stored.
func (i *CartItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculateTotal sums quantity x live price over all items with exact
// decimal arithmetic. An empty cart yields zero.
func (c *Cart) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalQuantity is the sum of quantities across all lines.
func (c *Cart) TotalQuantity() int {
	quantity := 0
	for _, item := range c.Items {
		quantity += item.Quantity
	}
	return quantity
}

// CartItemView is the serialized form of a cart line.
type CartItemView struct {
	ID                string      `json:"id"`
	Product           ProductView `json:"product"`
	Quantity          int         `json:"quantity"`
	Subtotal          string      `json:"subtotal"`
	FormattedSubtotal string      `json:"formatted_subtotal"`
}

// CartSnapshot is the structured record returned by every cart operation.
// Subtotal and Total are identical values; there is no tax/discount layer.
type CartSnapshot struct {
	ID             string         `json:"id"`
	Items          []CartItemView `json:"items"`
	ItemCount      int            `json:"item_count"`
	TotalQuantity  int            `json:"total_quantity"`
	Subtotal       string         `json:"subtotal"`
	Total          string         `json:"total"`
	FormattedTotal string         `json:"formatted_total"`
}

// Snapshot freezes the cart into its serialized form.
func (c *Cart) Snapshot() *CartSnapshot {
	items := make([]CartItemView, 0, len(c.Items))
	for _, item := range c.Items {
		subtotal := item.Subtotal()
		items = append(items, CartItemView{
			ID:                item.ID.String(),
			Product:           item.Product.View(),
			Quantity:          item.Quantity,
			Subtotal:          subtotal.StringFixed(2),
			FormattedSubtotal: FormatAmount(subtotal),
		})
	}

	total := c.CalculateTotal()
	return &CartSnapshot{
		ID:             c.ID.String(),
		Items:          items,
		ItemCount:      len(items),
		TotalQuantity:  c.TotalQuantity(),
		Subtotal:       total.StringFixed(2),
		Total:          total.StringFixed(2),
		FormattedTotal: FormatAmount(total),
	}
}
