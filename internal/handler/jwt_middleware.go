package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/service"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// JWTAuth returns a middleware that verifies the bearer token and puts the
// resulting identity into the request context. Requests without a
// well-formed bearer token are rejected before the handler runs.
func JWTAuth(verifier service.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			ident, err := verifier.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeServiceError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxIdentity, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the verified identity attached by JWTAuth.
func IdentityFromContext(ctx context.Context) (service.Identity, bool) {
	ident, ok := ctx.Value(ctxIdentity).(service.Identity)
	return ident, ok
}
