package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/config"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/models"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore mirrors the Mongo repository semantics in memory.
type fakeStore struct {
	recipes   map[primitive.ObjectID]*models.Recipe
	findCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{recipes: map[primitive.ObjectID]*models.Recipe{}}
}

func (f *fakeStore) Count(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for _, r := range f.recipes {
		if ownerID == "" || r.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindAll(context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range f.recipes {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) FindByOwner(_ context.Context, ownerID string) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range f.recipes {
		if r.UserID == ownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) FindTop(_ context.Context, limit int) ([]models.Recipe, error) {
	out, _ := f.FindAll(context.Background())
	sort.Slice(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	f.findCalls++
	r, ok := f.recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Insert(_ context.Context, rec *models.Recipe) error {
	rec.ID = primitive.NewObjectID()
	cp := *rec
	f.recipes[rec.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateByID(_ context.Context, id primitive.ObjectID, patch bson.M) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, nil
	}
	if r.Extra == nil {
		r.Extra = map[string]any{}
	}
	for k, v := range patch {
		r.Extra[k] = v
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.recipes[id]; !ok {
		return false, nil
	}
	delete(f.recipes, id)
	return true, nil
}

func (f *fakeStore) Like(_ context.Context, id primitive.ObjectID, likerID string) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, nil
	}
	for _, u := range r.LikedBy {
		if u == likerID {
			return nil, nil
		}
	}
	r.LikedBy = append(r.LikedBy, likerID)
	r.Likes++
	cp := *r
	return &cp, nil
}

// stubVerifier resolves fixed tokens to identities.
type stubVerifier struct {
	idents map[string]service.Identity
}

func (s stubVerifier) VerifyToken(raw string) (service.Identity, error) {
	if ident, ok := s.idents[raw]; ok {
		return ident, nil
	}
	return service.Identity{}, service.ErrInvalidToken
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

var (
	tokenA = "token-alice"
	tokenB = "token-bob"

	identA = service.Identity{UserID: "uid-a", Email: "alice@example.com"}
	identB = service.Identity{UserID: "uid-b", Email: "bob@example.com"}
)

func newTestRouter(t *testing.T, store service.RecipeStore) *chi.Mux {
	t.Helper()

	cfg := &config.Config{AllowedOrigins: []string{"*"}}
	verifier := stubVerifier{idents: map[string]service.Identity{
		tokenA: identA,
		tokenB: identB,
	}}

	recipeSvc := service.NewRecipeService(store, nil, nil)
	authSvc := service.NewAuthService(nil, "test-secret")

	return NewRouter(cfg,
		NewHealthHandler(fakePinger{}),
		NewAuthHandler(authSvc),
		NewRecipeHandler(recipeSvc),
		nil,
		verifier,
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
