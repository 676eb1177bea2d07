package transport

import (
	"net/http"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/middleware"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout request payload. The amount is a
// decimal string so no precision is lost in transit.
type CheckoutRequest struct {
	AmountPaid string `json:"amount_paid" validate:"required"`
}

// OrderHandler handles HTTP requests for checkout and order history
type OrderHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
	logger          *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService service.CheckoutService, orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		logger:          logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/checkout", h.Checkout)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
	})
}

// Checkout converts the caller's cart into a completed order
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	amountPaid, err := decimal.NewFromString(req.AmountPaid)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "amount_paid must be a decimal number")
		return
	}

	identity := middleware.GetIdentity(r.Context())

	receipt, err := h.checkoutService.Checkout(r.Context(), identity, amountPaid)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusCreated, "order completed", receipt)
}

// ListOrders returns the caller's order history, newest first
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var status domain.OrderStatus
	switch s := r.URL.Query().Get("status"); s {
	case "":
		// no filter
	case string(domain.OrderStatusPending), string(domain.OrderStatusCompleted), string(domain.OrderStatusCancelled):
		status = domain.OrderStatus(s)
	default:
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid order status")
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), identity, status)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", orders)
}

// GetOrder returns one of the caller's orders by ID
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid order id")
		return
	}

	identity := middleware.GetIdentity(r.Context())

	order, err := h.orderService.GetOrder(r.Context(), identity, id)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", order)
}
