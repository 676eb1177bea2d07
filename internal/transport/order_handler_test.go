package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type stubCheckoutService struct {
	receipt *domain.OrderReceipt
	err     error

	lastAmount decimal.Decimal
}

func (s *stubCheckoutService) Checkout(ctx context.Context, identity domain.Identity, amountPaid decimal.Decimal) (*domain.OrderReceipt, error) {
	s.lastAmount = amountPaid
	return s.receipt, s.err
}

type stubOrderService struct {
	orders []domain.OrderView
	order  *domain.OrderView
	err    error
}

func (s *stubOrderService) ListOrders(ctx context.Context, identity domain.Identity, status domain.OrderStatus) ([]domain.OrderView, error) {
	return s.orders, s.err
}

func (s *stubOrderService) GetOrder(ctx context.Context, identity domain.Identity, id uuid.UUID) (*domain.OrderView, error) {
	return s.order, s.err
}

func newOrderRouter(checkout *stubCheckoutService, orders *stubOrderService) chi.Router {
	router := chi.NewRouter()
	NewOrderHandler(checkout, orders, zap.NewNop()).RegisterRoutes(router)
	return router
}

func completedReceipt() *domain.OrderReceipt {
	order := &domain.Order{
		ID:           uuid.New(),
		Status:       domain.OrderStatusCompleted,
		TotalAmount:  decimal.RequireFromString("2500.00"),
		AmountPaid:   decimal.RequireFromString("3000.00"),
		ChangeAmount: decimal.RequireFromString("500.00"),
	}
	return order.Receipt()
}

func TestCheckout_Success(t *testing.T) {
	checkout := &stubCheckoutService{receipt: completedReceipt()}
	router := newOrderRouter(checkout, &stubOrderService{})

	body := []byte(`{"amount_paid": "3000.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	if !checkout.lastAmount.Equal(decimal.RequireFromString("3000.00")) {
		t.Errorf("amount forwarded = %s, want 3000.00", checkout.lastAmount)
	}

	var resp struct {
		Success bool                `json:"success"`
		Data    domain.OrderReceipt `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Payment.Change != "500.00" {
		t.Errorf("change = %s, want 500.00", resp.Data.Payment.Change)
	}
}

func TestCheckout_AmountMustBeDecimalString(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing amount", `{}`},
		{"not a number", `{"amount_paid": "lots"}`},
		{"json number instead of string", `{"amount_paid": 3000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&stubCheckoutService{}, &stubOrderService{})

			req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCheckout_PaymentShortageEnvelope(t *testing.T) {
	checkout := &stubCheckoutService{
		err: &domain.InsufficientPaymentError{
			Required: decimal.RequireFromString("2000.00"),
			Provided: decimal.RequireFromString("1500.00"),
			Shortage: decimal.RequireFromString("500.00"),
		},
	}
	router := newOrderRouter(checkout, &stubOrderService{})

	body := []byte(`{"amount_paid": "1500.00"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp middleware.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != "insufficient_payment" {
		t.Errorf("code = %s, want insufficient_payment", resp.Error.Code)
	}
	if resp.Error.Details["shortage"] != "500.00" {
		t.Errorf("shortage = %v, want 500.00", resp.Error.Details["shortage"])
	}
}

func TestListOrders_RejectsUnknownStatus(t *testing.T) {
	router := newOrderRouter(&stubCheckoutService{}, &stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=shipped", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	router := newOrderRouter(&stubCheckoutService{}, &stubOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
