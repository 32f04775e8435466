package db

import (
	"context"
	"log"
	"time"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo is the long-lived database handle. It is opened once in main,
// passed into the repositories, and closed on shutdown.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func Connect(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Printf("[mongo] connected to %s / DB=%s\n", cfg.MongoURI, cfg.MongoDB)
	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.MongoDB),
	}, nil
}

// Ping reports whether the database is reachable. Used by the health endpoint.
func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
