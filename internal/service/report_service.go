package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/post-engagement-api/internal/engagement"
	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/policy"
	"github.com/post-engagement-api/internal/report"
)

// reportService is the concrete implementation of ReportService
type reportService struct {
	*aggregate
	composer     report.Composer
	previewRunes int
	log          zerolog.Logger
}

// newReportService creates a new ReportService
func newReportService(agg *aggregate, composer report.Composer, previewRunes int, log zerolog.Logger) *reportService {
	return &reportService{
		aggregate:    agg,
		composer:     composer,
		previewRunes: previewRunes,
		log:          log.With().Str("service", "report").Logger(),
	}
}

// Build computes the engagement report of a post for its author
func (s *reportService) Build(ctx context.Context, postID, userID string) (*report.Report, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}

	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil || !policy.CanPublish(user.Role) {
		return nil, forbidden("Only authors can generate post reports.")
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanReport(user, post) {
		return nil, forbidden("You can only download reports for your own posts.")
	}

	authorPosts, err := s.repos.Post.List(ctx, models.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of author %s: %w", post.AuthorID, err)
	}

	now := s.now()
	metrics := engagement.Compute(post, now)
	ranking := engagement.Rank(post, authorPosts)
	if !ranking.Found {
		s.log.Warn().
			Str("post_id", post.ID).
			Str("author_id", post.AuthorID).
			Int("total_posts", ranking.TotalPosts).
			Msg("Post missing from its author's posts, rank falls back to total")
	}

	s.log.Info().
		Str("post_id", post.ID).
		Int("total_reactions", metrics.TotalReactions).
		Int("rank", ranking.Rank).
		Int("total_posts", ranking.TotalPosts).
		Msg("Report built")

	return report.New(post, user, metrics, ranking, s.previewRunes, now), nil
}

// Write renders r into w
func (s *reportService) Write(w io.Writer, r *report.Report) error {
	return s.composer.Compose(w, r)
}
