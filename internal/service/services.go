package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/auth"
	"github.com/post-engagement-api/internal/config"
	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/report"
	"github.com/post-engagement-api/internal/repository"
	"github.com/post-engagement-api/internal/validation"
)

// AuthService defines the interface for registration, login and sessions
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest, role models.Role) (*models.AuthView, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthView, error)
	Authenticate(raw string) (*auth.Session, error)
}

// UserService defines the interface for account management
type UserService interface {
	List(ctx context.Context) ([]models.UserView, error)
	Get(ctx context.Context, id string) (*models.UserView, error)
	Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.UserView, error)
	Delete(ctx context.Context, id, actingUserID string) (*models.DeletedView, error)
	Count(ctx context.Context) (int, error)
}

// PostService defines the interface for post aggregate operations.
// Every mutation returns the full sanitized aggregate.
type PostService interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.PostView, error)
	Get(ctx context.Context, postID string) (*models.PostView, error)
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.PostView, error)
	Update(ctx context.Context, postID string, req *models.UpdatePostRequest) (*models.PostView, error)
	Delete(ctx context.Context, postID, userID string) (*models.DeletedView, error)
	ToggleLike(ctx context.Context, postID, userID string) (*models.PostView, error)
	Count(ctx context.Context) (int, error)
}

// CommentService defines the interface for comments nested in a post
type CommentService interface {
	Add(ctx context.Context, postID string, req *models.ContentRequest) (*models.PostView, error)
	Update(ctx context.Context, postID, commentID string, req *models.ContentRequest) (*models.PostView, error)
	Delete(ctx context.Context, postID, commentID, userID string) (*models.PostView, error)
	ToggleLike(ctx context.Context, postID, commentID, userID string) (*models.PostView, error)
}

// ReplyService defines the interface for replies nested in a comment
type ReplyService interface {
	Add(ctx context.Context, postID, commentID string, req *models.ContentRequest) (*models.PostView, error)
	Update(ctx context.Context, postID, commentID, replyID string, req *models.ContentRequest) (*models.PostView, error)
	Delete(ctx context.Context, postID, commentID, replyID, userID string) (*models.PostView, error)
	ToggleLike(ctx context.Context, postID, commentID, replyID, userID string) (*models.PostView, error)
}

// ReportService defines the interface for engagement reports
type ReportService interface {
	Build(ctx context.Context, postID, userID string) (*report.Report, error)
	Write(w io.Writer, r *report.Report) error
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
	Reply   ReplyService
	Report  ReportService
}

// Option overrides a collaborator, mostly for tests
type Option func(*options)

type options struct {
	now      func() time.Time
	composer report.Composer
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithComposer replaces the PDF composer
func WithComposer(c report.Composer) Option {
	return func(o *options) { o.composer = c }
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger, opts ...Option) *Services {
	o := options{now: time.Now, composer: report.NewPDFComposer()}
	for _, opt := range opts {
		opt(&o)
	}

	agg := newAggregate(repos, o.now)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	v := validation.NewValidator()

	return &Services{
		Auth:    newAuthService(agg, hasher, tokens, v, log),
		User:    newUserService(agg, hasher, v, log),
		Post:    newPostService(agg, cfg.Posts.MaxImageBytes, log),
		Comment: newCommentService(agg, log),
		Reply:   newReplyService(agg, log),
		Report:  newReportService(agg, o.composer, cfg.Posts.ReportPreviewRunes, log),
	}
}
