package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRouter(verifier service.TokenVerifier) http.Handler {
	mw := JWTAuth(verifier)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusInternalServerError, "identity missing")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"userId": ident.UserID})
	}))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	h := authedRouter(stubVerifier{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTAuthWrongScheme(t *testing.T) {
	h := authedRouter(stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	h := authedRouter(stubVerifier{idents: map[string]service.Identity{}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, rr)["message"])
}

func TestJWTAuthAttachesIdentity(t *testing.T) {
	h := authedRouter(stubVerifier{idents: map[string]service.Identity{
		"good": {UserID: "uid-1", Email: "a@b.c"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "uid-1")
}

func TestVerifyTokenWithRealJWT(t *testing.T) {
	// End to end through the middleware with the HS256 verifier.
	authSvc := service.NewAuthService(nil, "mw-secret")
	h := authedRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// The body must not echo the parser's diagnostics.
	assert.Equal(t, "Invalid token", decodeBody(t, rr)["message"])
	assert.NotContains(t, rr.Body.String(), "segments")
	assert.NotContains(t, rr.Body.String(), "malformed")
}
