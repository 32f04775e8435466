package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/feed"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTopLimit is used when the top query carries no usable limit.
const DefaultTopLimit = 6

// cacheTTL bounds the lifetime of cached entries. Top-list keys carry a
// version that every mutation bumps, so superseded entries stop being read
// immediately and the TTL only reclaims them.
const cacheTTL = 30 * time.Second

// topVersionKey holds the current top-list cache version.
const topVersionKey = "recipes:top:ver"

// RecipeStore is the persistence surface the service needs. Implemented by
// repository.RecipeRepository.
type RecipeStore interface {
	Count(ctx context.Context, ownerID string) (int64, error)
	FindAll(ctx context.Context) ([]models.Recipe, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error)
	FindTop(ctx context.Context, limit int) ([]models.Recipe, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	Insert(ctx context.Context, rec *models.Recipe) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Recipe, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	Like(ctx context.Context, id primitive.ObjectID, likerID string) (*models.Recipe, error)
}

// RecipeCache is the caching surface. Implemented by cache.Cache; nil
// disables caching.
type RecipeCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) error
	GetInt64(ctx context.Context, key string) (int64, error)
}

// Publisher receives an event after each successful mutation. Implemented by
// feed.Hub; nil disables publishing.
type Publisher interface {
	Publish(ev feed.Event)
}

type RecipeService struct {
	recipes RecipeStore
	cache   RecipeCache
	feed    Publisher
}

func NewRecipeService(recipes RecipeStore, c RecipeCache, f Publisher) *RecipeService {
	return &RecipeService{recipes: recipes, cache: c, feed: f}
}

func (s *RecipeService) Count(ctx context.Context) (int64, error) {
	return s.recipes.Count(ctx, "")
}

func (s *RecipeService) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	return s.recipes.Count(ctx, ownerID)
}

func (s *RecipeService) ListAll(ctx context.Context) ([]models.Recipe, error) {
	out, err := s.recipes.FindAll(ctx)
	return nonNil(out), err
}

func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error) {
	out, err := s.recipes.FindByOwner(ctx, ownerID)
	return nonNil(out), err
}

func (s *RecipeService) Top(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	key := s.topKey(ctx, limit)
	if key != "" {
		var cached []models.Recipe
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := s.recipes.FindTop(ctx, limit)
	if err != nil {
		return nil, err
	}
	out = nonNil(out)
	if key != "" {
		_ = s.cache.SetJSON(ctx, key, out, cacheTTL)
	}
	return out, nil
}

func (s *RecipeService) Get(ctx context.Context, idHex string) (*models.Recipe, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}

	key := "recipe:" + idHex
	if s.cache != nil {
		var cached models.Recipe
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	rec, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, rec, cacheTTL)
	}
	return rec, nil
}

// Create stamps the server-owned fields from the verified identity and
// persists the recipe. Client-supplied values for those fields are discarded.
func (s *RecipeService) Create(ctx context.Context, ident Identity, rec models.Recipe) (*models.Recipe, error) {
	rec.ID = primitive.NilObjectID
	rec.UserID = ident.UserID
	rec.UserName = ident.DisplayName()
	rec.Likes = 0
	rec.LikedBy = []string{}
	rec.CreatedAt = time.Now().UTC()

	if err := s.recipes.Insert(ctx, &rec); err != nil {
		return nil, err
	}

	s.invalidate(ctx, rec.ID.Hex())
	s.publish(feed.Event{Event: "created", RecipeID: rec.ID.Hex(), UserID: rec.UserID, At: time.Now().UTC()})
	return &rec, nil
}

// Update merges the client patch into the recipe after an ownership check
// against the verified identity. Server-owned fields cannot be patched.
func (s *RecipeService) Update(ctx context.Context, ident Identity, idHex string, patch map[string]any) (*models.Recipe, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}

	rec, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.UserID != ident.UserID {
		return nil, ErrForbidden
	}

	set := bson.M{}
	for k, v := range patch {
		if protectedKeys[k] || k == "_id" {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		// Nothing patchable; return the document unchanged.
		return rec, nil
	}

	updated, err := s.recipes.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.invalidate(ctx, idHex)
	return updated, nil
}

func (s *RecipeService) Delete(ctx context.Context, ident Identity, idHex string) error {
	id, err := parseID(idHex)
	if err != nil {
		return err
	}

	rec, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	if rec.UserID != ident.UserID {
		return ErrForbidden
	}

	deleted, err := s.recipes.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.invalidate(ctx, idHex)
	s.publish(feed.Event{Event: "deleted", RecipeID: idHex, UserID: ident.UserID, At: time.Now().UTC()})
	return nil
}

// Like records likerID's like. Owners cannot like their own recipe. A repeat
// like is an idempotent no-op: the store only increments when likedBy
// actually gains a member, so likes always equals len(likedBy).
func (s *RecipeService) Like(ctx context.Context, idHex, likerID string) (already bool, err error) {
	id, err := parseID(idHex)
	if err != nil {
		return false, err
	}

	rec, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, ErrNotFound
	}
	if rec.UserID == likerID {
		return false, ErrForbidden
	}

	updated, err := s.recipes.Like(ctx, id, likerID)
	if err != nil {
		return false, err
	}
	if updated == nil {
		return true, nil
	}

	s.invalidate(ctx, idHex)
	s.publish(feed.Event{Event: "liked", RecipeID: idHex, UserID: likerID, Likes: updated.Likes, At: time.Now().UTC()})
	return false, nil
}

// protectedKeys are recipe fields only the server may write.
var protectedKeys = map[string]bool{
	"id":        true,
	"userId":    true,
	"userName":  true,
	"likes":     true,
	"likedBy":   true,
	"createdAt": true,
}

// topKey builds the versioned cache key for a top query, or "" when caching
// is disabled.
func (s *RecipeService) topKey(ctx context.Context, limit int) string {
	if s.cache == nil {
		return ""
	}
	ver, err := s.cache.GetInt64(ctx, topVersionKey)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("recipes:top:%d:%d", ver, limit)
}

// invalidate drops the per-recipe entry and bumps the top-list version so
// the next top read misses any list cached before this mutation.
func (s *RecipeService) invalidate(ctx context.Context, idHex string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "recipe:"+idHex)
	_ = s.cache.Incr(ctx, topVersionKey)
}

func (s *RecipeService) publish(ev feed.Event) {
	if s.feed != nil {
		s.feed.Publish(ev)
	}
}

func parseID(idHex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, idHex)
	}
	return id, nil
}

func nonNil(in []models.Recipe) []models.Recipe {
	if in == nil {
		return []models.Recipe{}
	}
	return in
}
