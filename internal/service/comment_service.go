package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/policy"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	*aggregate
	log zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(agg *aggregate, log zerolog.Logger) *commentService {
	return &commentService{
		aggregate: agg,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// Add puts a new comment at the head of the post's comment list
func (s *commentService) Add(ctx context.Context, postID string, req *models.ContentRequest) (*models.PostView, error) {
	text, err := content(req.UserID, req.Content)
	if err != nil {
		return nil, err
	}
	user, err := s.user(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		post.PrependComment(models.NewComment(s.newID(), user.ID, text, s.now()))
		return nil
	})
}

// Update edits a comment; its author and the post author may do so
func (s *commentService) Update(ctx context.Context, postID, commentID string, req *models.ContentRequest) (*models.PostView, error) {
	text, err := content(req.UserID, req.Content)
	if err != nil {
		return nil, err
	}
	user, err := s.user(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		comment, ok := post.Comment(commentID)
		if !ok {
			return ErrCommentNotFound
		}
		if !policy.CanManage(user.ID, comment.AuthorID, post.AuthorID) {
			return forbidden("You do not have permission to edit this comment.")
		}
		comment.Content = text
		comment.UpdatedAt = s.now()
		return nil
	})
}

// Delete removes a comment and every reply under it
func (s *commentService) Delete(ctx context.Context, postID, commentID, userID string) (*models.PostView, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		comment, ok := post.Comment(commentID)
		if !ok {
			return ErrCommentNotFound
		}
		if !policy.CanManage(user.ID, comment.AuthorID, post.AuthorID) {
			return forbidden("You do not have permission to delete this comment.")
		}

		removed, _ := post.RemoveComment(commentID)
		s.log.Debug().
			Str("post_id", postID).
			Str("comment_id", commentID).
			Int("replies_removed", len(removed.Replies)).
			Msg("Comment subtree removed")
		return nil
	})
}

// ToggleLike adds or removes the user's like on a comment
func (s *commentService) ToggleLike(ctx context.Context, postID, commentID, userID string) (*models.PostView, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		comment, ok := post.Comment(commentID)
		if !ok {
			return ErrCommentNotFound
		}
		comment.Likes.Toggle(userID)
		return nil
	})
}
