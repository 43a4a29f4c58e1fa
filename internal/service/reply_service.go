package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/policy"
)

// replyService is the concrete implementation of ReplyService
type replyService struct {
	*aggregate
	log zerolog.Logger
}

// newReplyService creates a new ReplyService
func newReplyService(agg *aggregate, log zerolog.Logger) *replyService {
	return &replyService{
		aggregate: agg,
		log:       log.With().Str("service", "reply").Logger(),
	}
}

// Add appends a reply to a comment
func (s *replyService) Add(ctx context.Context, postID, commentID string, req *models.ContentRequest) (*models.PostView, error) {
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
		comment.AppendReply(models.NewReply(s.newID(), user.ID, text, s.now()))
		return nil
	})
}

// Update edits a reply; its author and the post author may do so
func (s *replyService) Update(ctx context.Context, postID, commentID, replyID string, req *models.ContentRequest) (*models.PostView, error) {
	text, err := content(req.UserID, req.Content)
	if err != nil {
		return nil, err
	}
	user, err := s.user(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		reply, err := locateReply(post, commentID, replyID)
		if err != nil {
			return err
		}
		if !policy.CanManage(user.ID, reply.AuthorID, post.AuthorID) {
			return forbidden("You do not have permission to edit this reply.")
		}
		reply.Content = text
		reply.UpdatedAt = s.now()
		return nil
	})
}

// Delete removes a single reply
func (s *replyService) Delete(ctx context.Context, postID, commentID, replyID, userID string) (*models.PostView, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		reply, err := locateReply(post, commentID, replyID)
		if err != nil {
			return err
		}
		if !policy.CanManage(user.ID, reply.AuthorID, post.AuthorID) {
			return forbidden("You do not have permission to delete this reply.")
		}

		comment, _ := post.Comment(commentID)
		comment.RemoveReply(replyID)
		return nil
	})
}

// ToggleLike adds or removes the user's like on a reply
func (s *replyService) ToggleLike(ctx context.Context, postID, commentID, replyID, userID string) (*models.PostView, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, s.log, postID, func(post *models.Post) error {
		reply, err := locateReply(post, commentID, replyID)
		if err != nil {
			return err
		}
		reply.Likes.Toggle(userID)
		return nil
	})
}

// locateReply walks post -> comment -> reply, naming the level that is missing
func locateReply(post *models.Post, commentID, replyID string) (*models.Reply, error) {
	comment, ok := post.Comment(commentID)
	if !ok {
		return nil, ErrCommentNotFound
	}
	reply, ok := comment.Reply(replyID)
	if !ok {
		return nil, ErrReplyNotFound
	}
	return reply, nil
}
