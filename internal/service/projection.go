package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/repository"
)

// projector turns aggregates into sanitized views, resolving every referenced
// author with a single lookup. Authors that no longer exist project as nil.
type projector struct {
	users repository.UserRepository
}

func (p *projector) post(ctx context.Context, post *models.Post) (*models.PostView, error) {
	views, err := p.posts(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (p *projector) posts(ctx context.Context, posts []*models.Post) ([]models.PostView, error) {
	ids := lo.Uniq(lo.FlatMap(posts, func(post *models.Post, _ int) []string {
		return post.AuthorIDs()
	}))

	authors, err := p.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve authors: %w", err)
	}

	return lo.Map(posts, func(post *models.Post, _ int) models.PostView {
		return projectPost(post, authors)
	}), nil
}

func projectPost(post *models.Post, authors map[string]*models.User) models.PostView {
	return models.PostView{
		ID:      post.ID,
		Content: post.Content,
		Image:   post.Image,
		Author:  models.NewUserView(authors[post.AuthorID]),
		Likes:   post.Likes.IDs(),
		Comments: lo.Map(post.Comments, func(c models.Comment, _ int) models.CommentView {
			return projectComment(&c, authors)
		}),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func projectComment(c *models.Comment, authors map[string]*models.User) models.CommentView {
	return models.CommentView{
		ID:      c.ID,
		Content: c.Content,
		Author:  models.NewUserView(authors[c.AuthorID]),
		Likes:   c.Likes.IDs(),
		Replies: lo.Map(c.Replies, func(r models.Reply, _ int) models.ReplyView {
			return models.ReplyView{
				ID:        r.ID,
				Content:   r.Content,
				Author:    models.NewUserView(authors[r.AuthorID]),
				Likes:     r.Likes.IDs(),
				CreatedAt: r.CreatedAt,
				UpdatedAt: r.UpdatedAt,
			}
		}),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
