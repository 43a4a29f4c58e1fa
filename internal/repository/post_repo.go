package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/post-engagement-api/internal/database"
	"github.com/post-engagement-api/internal/models"
)

const postColumns = `id, author_id, content, image, likes, comments, version, created_at, updated_at`

// postRepo stores each aggregate as one row; likes and the comment tree are JSONB
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// Create inserts a new aggregate at version 1
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	likes, comments, err := encodeTree(post)
	if err != nil {
		return err
	}

	post.Version = 1
	query := `
		INSERT INTO posts (id, author_id, content, image, likes, comments, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		post.ID, post.AuthorID, post.Content, post.Image, likes, comments,
		post.Version, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID loads the full aggregate
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return post, err
}

// List returns posts newest first
func (r *postRepo) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE ($1 = '' OR author_id = $1)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, filter.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Save rewrites the aggregate when the stored version still matches
func (r *postRepo) Save(ctx context.Context, post *models.Post) error {
	likes, comments, err := encodeTree(post)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET content = $2, image = $3, likes = $4, comments = $5, updated_at = $6, version = version + 1
		WHERE id = $1 AND version = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Content, post.Image, likes, comments, post.UpdatedAt, post.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	if n == 0 {
		return ErrStaleWrite
	}

	post.Version++
	return nil
}

// Delete removes the aggregate with all its comments and replies
func (r *postRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

func encodeTree(post *models.Post) ([]byte, []byte, error) {
	likes, err := json.Marshal(post.Likes.IDs())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode likes: %w", err)
	}

	tree := post.Comments
	if tree == nil {
		tree = []models.Comment{}
	}
	comments, err := json.Marshal(tree)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode comments: %w", err)
	}
	return likes, comments, nil
}

func scanPost(s scanner) (*models.Post, error) {
	var (
		post     models.Post
		likes    []byte
		comments []byte
	)
	err := s.Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.Image, &likes, &comments,
		&post.Version, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likes, &post.Likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes of post %s: %w", post.ID, err)
	}
	if err := json.Unmarshal(comments, &post.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments of post %s: %w", post.ID, err)
	}
	return &post, nil
}
