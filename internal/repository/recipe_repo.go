package repository

import (
	"context"

	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/db"
	"github.com/AhsanHabibHamim/RecipeBookBackend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecipeRepository struct {
	col *mongo.Collection
}

func NewRecipeRepository(m *db.Mongo) *RecipeRepository {
	return &RecipeRepository{col: m.DB.Collection("recipes")}
}

// EnsureIndexes creates the likes index used by the top query. Called once
// at startup.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "likes", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	return err
}

// Count returns the number of recipes, optionally restricted to one owner.
func (r *RecipeRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["userId"] = ownerID
	}
	return r.col.CountDocuments(ctx, filter)
}

func (r *RecipeRepository) FindAll(ctx context.Context) ([]models.Recipe, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *RecipeRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Recipe, error) {
	return r.find(ctx, bson.M{"userId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// FindTop returns up to limit recipes sorted by likes descending.
func (r *RecipeRepository) FindTop(ctx context.Context, limit int) ([]models.Recipe, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likes", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *RecipeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var rec models.Recipe
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rec, err
}

func (r *RecipeRepository) Insert(ctx context.Context, rec *models.Recipe) error {
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateByID applies a partial $set and returns the updated document, or
// (nil, nil) when no recipe matched.
func (r *RecipeRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.Recipe, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec models.Recipe
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch}, opts).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rec, err
}

func (r *RecipeRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Like atomically increments the like counter and records the liker,
// returning the updated document. The filter excludes documents already
// liked by this user, so the increment and the set-add either both happen or
// neither does; a repeat like matches nothing, likes stays equal to
// len(likedBy), and the result is (nil, nil).
func (r *RecipeRepository) Like(ctx context.Context, id primitive.ObjectID, likerID string) (*models.Recipe, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rec models.Recipe
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "likedBy": bson.M{"$ne": likerID}},
		bson.M{
			"$inc":      bson.M{"likes": 1},
			"$addToSet": bson.M{"likedBy": likerID},
		},
		opts,
	).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rec, err
}

func (r *RecipeRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Recipe, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Recipe
	for cur.Next(ctx) {
		var rec models.Recipe
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}
