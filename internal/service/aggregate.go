package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/repository"
	"github.com/post-engagement-api/internal/validation"
)

// aggregate is the read-modify-write core shared by the post, comment and
// reply services. The whole post is the unit of consistency.
type aggregate struct {
	repos *repository.Repositories
	proj  *projector
	now   func() time.Time
	newID func() string
}

func newAggregate(repos *repository.Repositories, now func() time.Time) *aggregate {
	return &aggregate{
		repos: repos,
		proj:  &projector{users: repos.User},
		now:   now,
		newID: uuid.NewString,
	}
}

// user loads the acting user or fails with ErrUserNotFound
func (a *aggregate) user(ctx context.Context, userID string) (*models.User, error) {
	user, err := a.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// load fetches the aggregate or fails with ErrPostNotFound
func (a *aggregate) load(ctx context.Context, postID string) (*models.Post, error) {
	post, err := a.repos.Post.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post %s: %w", postID, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// mutate loads the post, applies fn to the in-memory copy, saves it back and
// returns the sanitized aggregate. A concurrent save surfaces as a conflict.
func (a *aggregate) mutate(ctx context.Context, log zerolog.Logger, postID string, fn func(post *models.Post) error) (*models.PostView, error) {
	post, err := a.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := fn(post); err != nil {
		return nil, err
	}

	post.UpdatedAt = a.now()
	if err := a.repos.Post.Save(ctx, post); err != nil {
		if errors.Is(err, repository.ErrStaleWrite) {
			log.Warn().
				Str("post_id", postID).
				Int64("version", post.Version).
				Msg("Rejected stale write")
			return nil, errConcurrentEdit
		}
		return nil, fmt.Errorf("failed to save post %s: %w", postID, err)
	}

	return a.proj.post(ctx, post)
}

// content trims text and rejects it when nothing is left
func content(userID, text string) (string, error) {
	text = validation.NormalizeContent(text)
	if userID == "" || text == "" {
		return "", invalid("User ID and content are required.")
	}
	return text, nil
}

func requireUserID(userID string) error {
	if userID == "" {
		return invalid("User ID is required.")
	}
	return nil
}
