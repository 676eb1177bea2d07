package transport

import (
	"net/http"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/middleware"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart request payload
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest represents the cart item quantity update payload
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{itemID}", h.UpdateItem)
		r.Delete("/items/{itemID}", h.RemoveItem)
		r.Delete("/", h.ClearCart)
	})
}

// GetCart returns the caller's cart snapshot
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	snapshot, err := h.cartService.GetCart(r.Context(), identity)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", snapshot)
}

// AddItem adds a product to the caller's cart, merging with any existing line
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid product id")
		return
	}

	identity := middleware.GetIdentity(r.Context())

	snapshot, err := h.cartService.AddItem(r.Context(), identity, productID, req.Quantity)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "item added to cart", snapshot)
}

// UpdateItem replaces the quantity of a cart line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid cart item id")
		return
	}

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	identity := middleware.GetIdentity(r.Context())

	snapshot, err := h.cartService.UpdateItem(r.Context(), identity, itemID, req.Quantity)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "cart item updated", snapshot)
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid cart item id")
		return
	}

	identity := middleware.GetIdentity(r.Context())

	snapshot, err := h.cartService.RemoveItem(r.Context(), identity, itemID)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "cart item removed", snapshot)
}

// ClearCart removes every line from the caller's cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	snapshot, err := h.cartService.Clear(r.Context(), identity)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "cart cleared", snapshot)
}
