package transport

import (
	"net/http"
	"strconv"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/middleware"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/repository"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductListResponse represents a paginated product listing
type ProductListResponse struct {
	Products []domain.ProductView `json:"products"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Total    int                  `json:"total"`
}

// ProductHandler handles HTTP requests for catalog browsing
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/search", h.SearchProducts)
		r.Get("/{id}", h.GetProduct)
	})
}

// ListProducts returns a page of active products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	sortBy := r.URL.Query().Get("sort_by")
	if sortBy == "" {
		sortBy = "created_at"
	}

	sortOrder := repository.SortOrderDesc
	if r.URL.Query().Get("sort_order") == "asc" {
		sortOrder = repository.SortOrderAsc
	}

	products, total, err := h.catalogService.ListProducts(r.Context(), page, pageSize, sortBy, sortOrder)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", ProductListResponse{
		Products: products,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// SearchProducts returns active products whose name or description matches the query
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "search query is required")
		return
	}

	page, pageSize := parsePagination(r)

	products, total, err := h.catalogService.SearchProducts(r.Context(), query, page, pageSize)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", ProductListResponse{
		Products: products,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// GetProduct returns a single active product by ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "validation_error", "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", product)
}

// parsePagination reads page/page_size query params, clamping to sane bounds
func parsePagination(r *http.Request) (int, int) {
	page := defaultPage
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	pageSize := defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
