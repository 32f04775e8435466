package handler

import (
	"net/http"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/config"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the full HTTP surface. The swagger UI is mounted by main
// on top of the returned mux.
func NewRouter(
	cfg *config.Config,
	healthH *HealthHandler,
	authH *AuthHandler,
	recipeH *RecipeHandler,
	feedH http.Handler,
	verifier service.TokenVerifier,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(RecoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.NotFound(NotFound)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Recipe Book API"})
	})
	r.Get("/health", healthH.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
			r.Get("/me", authH.Me)
		})

		r.Route("/recipes", func(r chi.Router) {
			// Public reads. Static segments are declared alongside {id};
			// chi resolves them first.
			r.Get("/", recipeH.List)
			r.Get("/count", recipeH.Count)
			r.Get("/top", recipeH.Top)
			r.Get("/my", recipeH.Mine)
			r.Get("/my/count", recipeH.MyCount)
			r.Get("/{id}", recipeH.Get)

			// Liking carries the liker in the body; self-likes are rejected
			// in the service.
			r.Post("/{id}/like", recipeH.Like)

			if feedH != nil {
				r.Get("/feed", feedH.ServeHTTP)
			}

			// Writes require a verified identity.
			r.Group(func(r chi.Router) {
				r.Use(JWTAuth(verifier))
				r.Post("/", recipeH.Create)
				r.Put("/{id}", recipeH.Update)
				r.Delete("/{id}", recipeH.Delete)
			})
		})
	})

	return r
}
