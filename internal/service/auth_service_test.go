package service

import (
	"context"
	"testing"
	"time"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserStore struct {
	byEmail map[string]*models.UserDoc
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.UserDoc{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.UserDoc) error {
	u.ID = primitive.NewObjectID()
	f.byEmail[u.Email] = u
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	u, err := svc.Register(context.Background(), "alice@example.com", "hunter2", "Alice")
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.NotEqual(t, "hunter2", u.PasswordHash)

	token, got, err := svc.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token)

	ident, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), ident.UserID)
	assert.Equal(t, "alice@example.com", ident.Email)
	assert.Equal(t, "Alice", ident.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, err := svc.Register(context.Background(), "alice@example.com", "hunter2", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "other", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "alice@example.com", "hunter2", "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(newFakeUserStore(), "secret-a")
	verifier := NewAuthService(newFakeUserStore(), "secret-b")

	_, err := issuer.Register(context.Background(), "alice@example.com", "hunter2", "")
	require.NoError(t, err)
	token, _, err := issuer.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "abc",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	raw, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRequiresSub(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := noSub.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentityDisplayName(t *testing.T) {
	assert.Equal(t, "alice", Identity{Email: "alice@example.com"}.DisplayName())
	assert.Equal(t, "bob.smith", Identity{Email: "bob.smith@mail.test", Name: "Bob"}.DisplayName())
	assert.Equal(t, "Carol", Identity{Name: "Carol"}.DisplayName())
}
