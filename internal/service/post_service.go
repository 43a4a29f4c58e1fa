package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/policy"
	"github.com/post-engagement-api/internal/validation"
)

// postService is the concrete implementation of PostService
type postService struct {
	*aggregate
	maxImageBytes int64
	log           zerolog.Logger
}

// newPostService creates a new PostService
func newPostService(agg *aggregate, maxImageBytes int64, log zerolog.Logger) *postService {
	return &postService{
		aggregate:     agg,
		maxImageBytes: maxImageBytes,
		log:           log.With().Str("service", "post").Logger(),
	}
}

// List returns sanitized posts, newest first
func (s *postService) List(ctx context.Context, filter models.PostFilter) ([]models.PostView, error) {
	posts, err := s.repos.Post.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return s.proj.posts(ctx, posts)
}

// Get returns one sanitized post
func (s *postService) Get(ctx context.Context, postID string) (*models.PostView, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.proj.post(ctx, post)
}

// Create publishes a new post on behalf of an author
func (s *postService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.PostView, error) {
	text := validation.NormalizeContent(req.Content)
	if req.AuthorID == "" || text == "" {
		return nil, invalid("Author ID and content are required.")
	}

	if err := s.checkImage(req.Image); err != nil {
		return nil, err
	}

	author, err := s.publisher(ctx, req.AuthorID, "You do not have permission to publish posts.")
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := models.NewPost(s.newID(), author.ID, text, req.Image, now)
	if err := s.repos.Post.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info().
		Str("post_id", post.ID).
		Str("author_id", author.ID).
		Bool("has_image", post.Image != "").
		Msg("Post published")

	return s.proj.post(ctx, post)
}

// Update replaces the content and image of a post owned by the acting user
func (s *postService) Update(ctx context.Context, postID string, req *models.UpdatePostRequest) (*models.PostView, error) {
	text, err := content(req.UserID, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.checkImage(req.Image); err != nil {
		return nil, err
	}

	user, err := s.publisher(ctx, req.UserID, "You do not have permission to update posts.")
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		if !policy.CanManagePost(user.ID, post) {
			return forbidden("You can only update your own posts.")
		}
		post.Content = text
		post.Image = req.Image
		return nil
	})
}

// Delete removes a post together with all of its comments and replies
func (s *postService) Delete(ctx context.Context, postID, userID string) (*models.DeletedView, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	user, err := s.publisher(ctx, userID, "You do not have permission to delete posts.")
	if err != nil {
		return nil, err
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManagePost(user.ID, post) {
		return nil, forbidden("You can only delete your own posts.")
	}

	deleted, err := s.repos.Post.Delete(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post %s: %w", postID, err)
	}
	if !deleted {
		return nil, ErrPostNotFound
	}

	s.log.Info().
		Str("post_id", postID).
		Int("comments", len(post.Comments)).
		Int("replies", post.ReplyCount()).
		Msg("Post deleted")

	return &models.DeletedView{ID: postID}, nil
}

// ToggleLike adds or removes the user's like on a post
func (s *postService) ToggleLike(ctx context.Context, postID, userID string) (*models.PostView, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		post.Likes.Toggle(userID)
		return nil
	})
}

// publisher loads a user who may publish; a missing user is treated as forbidden
func (s *postService) publisher(ctx context.Context, userID, message string) (*models.User, error) {
	user, err := s.user(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, forbidden(message)
	}
	if err != nil {
		return nil, err
	}
	if !policy.CanPublish(user.Role) {
		return nil, forbidden(message)
	}
	return user, nil
}

// checkImage enforces the decoded size ceiling before anything is persisted
func (s *postService) checkImage(image string) error {
	_, err := validation.ParseImage(image, s.maxImageBytes)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, validation.ErrImageTooLarge):
		return imageTooLarge(s.maxImageBytes)
	case errors.Is(err, validation.ErrImageEncoding):
		return invalid("Image must be a base64 string or a base64 data URI.")
	default:
		return err
	}
}

// Count returns the number of stored posts
func (s *postService) Count(ctx context.Context) (int, error) {
	return s.repos.Post.Count(ctx)
}
