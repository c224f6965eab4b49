// Package auth resolves the authenticated user for a request. Credential
// validation happens upstream; this middleware trusts the identity header
// the gateway forwards.
package auth

import (
	"context"
	"net/http"
	"strconv"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Header carries the authenticated user ID resolved by the gateway.
const Header = "X-User-ID"

type contextKey struct{}

// Middleware extracts the caller's identity and stores it on the request
// context.
type Middleware struct {
	logger *zap.Logger
}

// New creates a new auth middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{logger: logger.Named("auth")}
}

// AsRESTMiddleware rejects requests without a resolvable identity.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		raw := req.Header.Get(Header)
		if raw == "" {
			http.Error(w, "Missing identity", http.StatusUnauthorized)
			return nil
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			m.logger.Debug("Rejected request with malformed identity header",
				zap.String("value", raw))
			http.Error(w, "Invalid identity", http.StatusUnauthorized)

			return nil
		}

		ctx := context.WithValue(req.Context(), contextKey{}, userID)

		return next(w, req.WithContext(ctx))
	}
}

// UserID returns the authenticated user ID stored on the context.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(contextKey{}).(int64)
	return userID, ok
}
