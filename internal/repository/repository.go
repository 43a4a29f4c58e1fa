package repository

import (
	"context"
	"errors"

	"github.com/post-engagement-api/internal/database"
	"github.com/post-engagement-api/internal/models"
)

var (
	// ErrStaleWrite is returned when a post was saved by someone else after it was loaded
	ErrStaleWrite = errors.New("post was modified concurrently")
	// ErrDuplicateEmail is returned when an email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user data operations.
// Lookups return nil without an error when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PostRepository defines the interface for post aggregate operations.
// A post is always read and written whole, comments and replies included.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// List returns posts newest first, optionally narrowed to one author
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	// Save persists the aggregate if nobody saved it since it was loaded,
	// then bumps post.Version. Otherwise it returns ErrStaleWrite.
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User UserRepository
	Post PostRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User: NewUserRepo(db),
		Post: NewPostRepo(db),
	}
}

// NewMongo creates all repositories backed by the document store
func NewMongo(m *database.Mongo) *Repositories {
	return &Repositories{
		User: NewMongoUserRepo(m),
		Post: NewMongoPostRepo(m),
	}
}
