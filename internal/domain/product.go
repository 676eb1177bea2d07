package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents an item in the catalog
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	ImageURL      string          `json:"image_url" db:"image_url"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	TotalOrdered  int             `json:"total_ordered" db:"total_ordered"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// IsInStock reports whether the product has any stock left
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// CanFulfill reports whether the requested quantity can be served from stock
func (p *Product) CanFulfill(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	return p.StockQuantity >= quantity
}

// ProductView is the serialized form of a product with exact decimal strings
type ProductView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	FormattedPrice string `json:"formatted_price"`
	ImageURL       string `json:"image_url,omitempty"`
	StockQuantity  int    `json:"stock_quantity"`
	InStock        bool   `json:"in_stock"`
	CreatedAt      string `json:"created_at"`
}

// View converts a product to its serialized form
func (p *Product) View() ProductView {
	return ProductView{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		FormattedPrice: FormatAmount(p.Price),
		ImageURL:       p.ImageURL,
		StockQuantity:  p.StockQuantity,
		InStock:        p.IsInStock(),
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
