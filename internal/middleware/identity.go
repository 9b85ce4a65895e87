package middleware

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thanhng/socialhub/internal/handlers"
	"github.com/thanhng/socialhub/internal/services"
)

// Authentication happens upstream; the gateway forwards the verified caller
// id in this header.
const userIDHeader = "X-User-ID"

type IdentityMiddleware struct {
	userService services.UserServiceInterface
}

func NewIdentityMiddleware(userService services.UserServiceInterface) *IdentityMiddleware {
	return &IdentityMiddleware{userService: userService}
}

// Resolve loads the caller named by the identity header and adds them to the
// request context. Does not reject requests without an identity.
func (m *IdentityMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(userIDHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := primitive.ObjectIDFromHex(header)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.userService.GetByID(r.Context(), id)
		if err != nil {
			// Unknown caller, continue without identity
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetUserInContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests without a resolved identity with 401.
func (m *IdentityMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := handlers.GetUserFromContext(r.Context())
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
