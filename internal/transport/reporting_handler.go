package transport

import (
	"net/http"
	"strconv"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/middleware"
	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportingHandler handles HTTP requests for analytics dashboards
type ReportingHandler struct {
	reportingService service.ReportingService
	logger           *zap.Logger
}

// NewReportingHandler creates a new ReportingHandler
func NewReportingHandler(reportingService service.ReportingService, logger *zap.Logger) *ReportingHandler {
	return &ReportingHandler{
		reportingService: reportingService,
		logger:           logger,
	}
}

// RegisterRoutes registers all analytics routes
func (h *ReportingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/products", h.ProductAnalytics)
		r.Get("/revenue", h.RevenueAnalysis)
	})
}

// Dashboard returns the sales dashboard for a trailing window of days
func (h *ReportingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportingService.Dashboard(r.Context(), parseDays(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", stats)
}

// ProductAnalytics returns per-product performance buckets and recommendations
func (h *ReportingHandler) ProductAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.reportingService.ProductAnalytics(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", analytics)
}

// RevenueAnalysis returns daily revenue with a growth summary
func (h *ReportingHandler) RevenueAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.reportingService.RevenueAnalysis(r.Context(), parseDays(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, "", analysis)
}

// parseDays reads the days query param; the service clamps out-of-range values
func parseDays(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		return 0
	}
	return days
}
