package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func cartLine(price string, quantity int) *CartItem {
	return &CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Product: &Product{
			ID:       uuid.New(),
			Name:     "item",
			Price:    decimal.RequireFromString(price),
			IsActive: true,
		},
		Quantity: quantity,
	}
}

func TestCalculateTotal_EmptyCartIsZero(t *testing.T) {
	cart := &Cart{ID: uuid.New()}

	if total := cart.CalculateTotal(); !total.IsZero() {
		t.Errorf("empty cart total = %s, want 0", total)
	}
}

func TestCalculateTotal_ExactDecimalArithmetic(t *testing.T) {
	cart := &Cart{
		ID: uuid.New(),
		Items: []*CartItem{
			cartLine("0.10", 3),
			cartLine("0.20", 1),
		},
	}

	// 3 x 0.10 + 0.20 is exactly 0.50; float math would drift.
	if got := cart.CalculateTotal().StringFixed(2); got != "0.50" {
		t.Errorf("total = %s, want 0.50", got)
	}
}

func TestSubtotal_NilProductIsZero(t *testing.T) {
	item := &CartItem{ID: uuid.New(), Quantity: 5}

	if subtotal := item.Subtotal(); !subtotal.IsZero() {
		t.Errorf("subtotal without product = %s, want 0", subtotal)
	}
}

func TestProperty_CartTotalIsSumOfLineSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals the exact sum of price times quantity over all lines", prop.ForAll(
		func(cents []int, quantities []int) bool {
			n := len(cents)
			if len(quantities) < n {
				n = len(quantities)
			}

			cart := &Cart{ID: uuid.New()}
			want := decimal.Zero
			for i := 0; i < n; i++ {
				price := decimal.New(int64(cents[i]), -2)
				item := cartLine(price.String(), quantities[i])
				cart.Items = append(cart.Items, item)
				want = want.Add(price.Mul(decimal.NewFromInt(int64(quantities[i]))))
			}

			return cart.CalculateTotal().Equal(want) &&
				cart.TotalQuantity() == sum(quantities[:n])
		},
		gen.SliceOf(gen.IntRange(1, 10_000_000)),
		gen.SliceOf(gen.IntRange(1, 100)),
	))

	properties.TestingRun(t)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func TestSnapshot_SubtotalEqualsTotal(t *testing.T) {
	cart := &Cart{
		ID: uuid.New(),
		Items: []*CartItem{
			cartLine("1000.00", 2),
			cartLine("500.00", 1),
		},
	}

	snapshot := cart.Snapshot()
	if snapshot.Subtotal != snapshot.Total {
		t.Errorf("subtotal %s != total %s", snapshot.Subtotal, snapshot.Total)
	}
	if snapshot.Total != "2500.00" {
		t.Errorf("total = %s, want 2500.00", snapshot.Total)
	}
	if snapshot.ItemCount != 2 || snapshot.TotalQuantity != 3 {
		t.Errorf("counts = %d/%d, want 2/3", snapshot.ItemCount, snapshot.TotalQuantity)
	}
}
