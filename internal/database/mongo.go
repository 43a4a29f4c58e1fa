package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/post-engagement-api/internal/config"
)

// Collection names
const (
	UsersCollection = "users"
	PostsCollection = "posts"
)

// Mongo wraps a connected client and the application database
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      zerolog.Logger
}

// NewMongo connects to the document store and verifies the connection
func NewMongo(ctx context.Context, cfg *config.MongoConfig, log zerolog.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	m := &Mongo{
		Client:   client,
		Database: client.Database(cfg.Database),
		log:      log.With().Str("component", "mongo").Logger(),
	}

	m.log.Info().
		Str("database", cfg.Database).
		Msg("Mongo connection established")

	return m, nil
}

// EnsureIndexes creates the indexes the repositories rely on
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	users := m.Database.Collection(UsersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	posts := m.Database.Collection(PostsCollection)
	_, err = posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("posts_created_at"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("posts_author_created_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create posts indexes: %w", err)
	}

	m.log.Info().Msg("Mongo indexes ensured")
	return nil
}

// HealthCheck verifies the client can reach the primary
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
