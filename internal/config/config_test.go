package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "recipebook", cfg.MongoDB)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "recipes_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "recipes_test", cfg.MongoDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t,
		[]string{"http://a.example", "http://b.example"},
		splitList(" http://a.example , http://b.example ,"))
	assert.Nil(t, splitList(" , "))
}
