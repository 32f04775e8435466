package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/models"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/service"

	"github.com/go-chi/chi/v5"
)

type RecipeHandler struct {
	svc *service.RecipeService
}

func NewRecipeHandler(s *service.RecipeService) *RecipeHandler { return &RecipeHandler{svc: s} }

// @Summary Total recipe count
// @Tags recipes
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/recipes/count [get]
func (h *RecipeHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// @Summary Recipe count for one user
// @Tags recipes
// @Produce json
// @Param userId query string true "owner user id"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} map[string]string
// @Router /api/recipes/my/count [get]
func (h *RecipeHandler) MyCount(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	n, err := h.svc.CountByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": n})
}

// @Summary Top liked recipes
// @Tags recipes
// @Produce json
// @Param limit query int false "max results (default: 6)"
// @Success 200 {array} models.Recipe
// @Router /api/recipes/top [get]
func (h *RecipeHandler) Top(w http.ResponseWriter, r *http.Request) {
	// A missing or non-numeric limit falls back to the default.
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = service.DefaultTopLimit
	}

	recipes, err := h.svc.Top(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// @Summary Recipes owned by one user
// @Tags recipes
// @Produce json
// @Param userId query string true "owner user id"
// @Success 200 {array} models.Recipe
// @Failure 400 {object} map[string]string
// @Router /api/recipes/my [get]
func (h *RecipeHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	recipes, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// @Summary List all recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} models.Recipe
// @Router /api/recipes [get]
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// @Summary Get one recipe
// @Tags recipes
// @Produce json
// @Param id path string true "recipe id"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id} [get]
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// @Summary Create a recipe
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.Recipe true "recipe fields (schemaless)"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/recipes [post]
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing identity")
		return
	}

	var rec models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), ident, rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// @Summary Update a recipe (owner only)
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "recipe id"
// @Param body body object true "fields to merge"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id} [put]
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing identity")
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), ident, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// @Summary Delete a recipe (owner only)
// @Tags recipes
// @Security BearerAuth
// @Produce json
// @Param id path string true "recipe id"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing identity")
		return
	}

	if err := h.svc.Delete(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted"})
}

type likeRequest struct {
	UserID string `json:"userId"`
}

// @Summary Like a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path string true "recipe id"
// @Param body body likeRequest true "liking user"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/like [post]
func (h *RecipeHandler) Like(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	already, err := h.svc.Like(r.Context(), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if already {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Already liked"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe liked"})
}
