package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityMiddleware resolves which identity a request acts for. A valid
// bearer token binds the request to the user_id claim; a missing or invalid
// token degrades to the named anonymous identity instead of rejecting the
// request, since authorization is handled upstream.
func IdentityMiddleware(tokenSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolveIdentity(r, tokenSecret, logger)

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveIdentity(r *http.Request, tokenSecret string, logger *zap.Logger) domain.Identity {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return domain.AnonymousIdentity
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		logger.Debug("Malformed authorization header, using anonymous identity")
		return domain.AnonymousIdentity
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(tokenSecret), nil
	})
	if err != nil || !token.Valid {
		logger.Debug("Identity token rejected, using anonymous identity", zap.Error(err))
		return domain.AnonymousIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.AnonymousIdentity
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		logger.Debug("Identity token missing user_id claim, using anonymous identity")
		return domain.AnonymousIdentity
	}

	return domain.Identity(userID)
}

// GetIdentity extracts the resolved identity from the request context.
// Requests that bypassed the middleware count as anonymous.
func GetIdentity(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.AnonymousIdentity
}
