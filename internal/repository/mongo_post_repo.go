package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/post-engagement-api/internal/database"
	"github.com/post-engagement-api/internal/models"
)

// mongoPostRepo stores each aggregate as a native document with embedded
// comments and replies
type mongoPostRepo struct {
	coll *mongo.Collection
}

// NewMongoPostRepo creates a post repository on the document store
func NewMongoPostRepo(m *database.Mongo) PostRepository {
	return &mongoPostRepo{coll: m.Database.Collection(database.PostsCollection)}
}

// Create inserts a new aggregate at version 1
func (r *mongoPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.Version = 1
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID loads the full aggregate
func (r *mongoPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &post, nil
}

// List returns posts newest first
func (r *mongoPostRepo) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	query := bson.M{}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Save replaces the document only if its version still matches the loaded one
func (r *mongoPostRepo) Save(ctx context.Context, post *models.Post) error {
	loaded := post.Version
	next := *post
	next.Version = loaded + 1

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID, "version": loaded}, &next)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStaleWrite
	}

	post.Version = next.Version
	return nil
}

// Delete removes the aggregate with all its comments and replies
func (r *mongoPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Count returns the total number of posts
func (r *mongoPostRepo) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return int(n), nil
}
