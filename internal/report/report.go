// Package report builds the engagement report of a post and renders it as PDF.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/post-engagement-api/internal/engagement"
	"github.com/post-engagement-api/internal/models"
)

// UnknownAuthor is printed when the post author no longer exists
const UnknownAuthor = "Unknown author"

// DefaultPreviewRunes caps the content preview when no limit is configured
const DefaultPreviewRunes = 500

// Report is the value handed to a Composer
type Report struct {
	PostID               string
	AuthorName           string
	PublishedAt          time.Time
	DaysSincePublication int
	ContentPreview       string
	Metrics              engagement.Metrics
	Rank                 int
	TotalPosts           int
	GeneratedAt          time.Time
}

// Composer renders a report into w
type Composer interface {
	Compose(w io.Writer, r *Report) error
}

// New assembles a report for post. author may be nil for a deleted account.
func New(post *models.Post, author *models.User, metrics engagement.Metrics, ranking engagement.Ranking, previewRunes int, now time.Time) *Report {
	name := UnknownAuthor
	if author != nil && strings.TrimSpace(author.Name) != "" {
		name = author.Name
	}

	return &Report{
		PostID:               post.ID,
		AuthorName:           name,
		PublishedAt:          post.CreatedAt,
		DaysSincePublication: metrics.DaysSincePublication,
		ContentPreview:       Preview(post.Content, previewRunes),
		Metrics:              metrics,
		Rank:                 ranking.Rank,
		TotalPosts:           ranking.TotalPosts,
		GeneratedAt:          now,
	}
}

// Filename is the attachment name of a post report
func Filename(postID string) string {
	return fmt.Sprintf("post-report-%s.pdf", postID)
}

// Preview shortens content to at most limit runes
func Preview(content string, limit int) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return "No content provided."
	}
	if limit <= 0 {
		limit = DefaultPreviewRunes
	}

	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
