package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"

	"go.uber.org/zap"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// SuccessResponse wraps a success payload in the API envelope
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// RespondWithError sends a structured error response
func RespondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	respondWithErrorDetails(w, statusCode, code, message, nil)
}

// respondWithErrorDetails sends a structured error response with additional details
func respondWithErrorDetails(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	json.NewEncoder(w).Encode(response)
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	details := make(map[string]interface{})
	details["validation_errors"] = errors

	respondWithErrorDetails(w, http.StatusBadRequest, "validation_error", "validation failed", details)
}

// RespondWithDomainError maps a domain error kind to its HTTP status and
// envelope, carrying the structured remediation data the kind provides.
// Unexpected errors become an opaque 500; transaction atomicity guarantees
// they left no partial side effects.
func RespondWithDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		emptyCartErr  *domain.EmptyCartError
		paymentErr    *domain.InsufficientPaymentError
		stockErr      *domain.InsufficientStockError
		conflictErr   *domain.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, http.StatusBadRequest, "validation_error", validationErr.Error())

	case errors.As(err, &notFoundErr):
		RespondWithError(w, http.StatusNotFound, "not_found", notFoundErr.Error())

	case errors.As(err, &emptyCartErr):
		RespondWithError(w, http.StatusBadRequest, "empty_cart", emptyCartErr.Error())

	case errors.As(err, &paymentErr):
		respondWithErrorDetails(w, http.StatusBadRequest, "insufficient_payment", paymentErr.Error(), map[string]interface{}{
			"required":           paymentErr.Required.StringFixed(2),
			"formatted_required": domain.FormatAmount(paymentErr.Required),
			"provided":           paymentErr.Provided.StringFixed(2),
			"formatted_provided": domain.FormatAmount(paymentErr.Provided),
			"shortage":           paymentErr.Shortage.StringFixed(2),
			"formatted_shortage": domain.FormatAmount(paymentErr.Shortage),
		})

	case errors.As(err, &stockErr):
		respondWithErrorDetails(w, http.StatusBadRequest, "insufficient_stock",
			"Some items are out of stock or have insufficient quantity.",
			map[string]interface{}{"items": stockErr.Shortfalls})

	case errors.As(err, &conflictErr):
		RespondWithError(w, http.StatusConflict, "conflict", conflictErr.Error())

	default:
		logger.Error("Unexpected error", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithData sends a payload inside the success envelope
func RespondWithData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	RespondWithJSON(w, statusCode, SuccessResponse{Success: true, Message: message, Data: data})
}
