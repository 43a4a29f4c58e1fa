// Package engagement computes per-post reaction counters and ranks a post
// among its author's other posts.
package engagement

import (
	"sort"
	"time"

	"github.com/post-engagement-api/internal/models"
)

const day = 24 * time.Hour

// Metrics are the engagement counters of a single post
type Metrics struct {
	LikesCount           int `json:"likesCount"`
	CommentCount         int `json:"commentCount"`
	RepliesCount         int `json:"repliesCount"`
	CommentLikesTotal    int `json:"commentLikesTotal"`
	ReplyLikesTotal      int `json:"replyLikesTotal"`
	TotalReactions       int `json:"totalReactions"`
	DaysSincePublication int `json:"daysSincePublication"`
}

// Ranking places a post among its author's posts, ordered by total reactions
type Ranking struct {
	Rank       int  `json:"rank"`
	TotalPosts int  `json:"totalPosts"`
	Found      bool `json:"-"`
}

// Compute walks the aggregate once and fills every counter.
// Days since publication are floored at zero so clock skew never goes negative.
func Compute(post *models.Post, now time.Time) Metrics {
	m := Metrics{
		LikesCount:   post.Likes.Len(),
		CommentCount: len(post.Comments),
	}

	for i := range post.Comments {
		c := &post.Comments[i]
		m.RepliesCount += len(c.Replies)
		m.CommentLikesTotal += c.Likes.Len()
		m.ReplyLikesTotal += c.LikesOnReplies()
	}

	m.TotalReactions = m.LikesCount + m.CommentLikesTotal + m.ReplyLikesTotal

	if elapsed := now.Sub(post.CreatedAt); elapsed > 0 {
		m.DaysSincePublication = int(elapsed / day)
	}

	return m
}

// TotalReactions is the headline ranking metric of a post
func TotalReactions(post *models.Post) int {
	total := post.Likes.Len()
	for i := range post.Comments {
		total += post.Comments[i].Likes.Len() + post.Comments[i].LikesOnReplies()
	}
	return total
}

// Rank sorts authorPosts by total reactions, descending and stable so ties keep
// the store order, and returns the 1-based position of target.
// When target is missing from authorPosts the rank falls back to the list length
// and Found is false.
func Rank(target *models.Post, authorPosts []*models.Post) Ranking {
	type entry struct {
		id        string
		reactions int
	}

	entries := make([]entry, len(authorPosts))
	for i, p := range authorPosts {
		entries[i] = entry{id: p.ID, reactions: TotalReactions(p)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].reactions > entries[j].reactions
	})

	ranking := Ranking{Rank: len(entries), TotalPosts: len(entries)}
	for i, e := range entries {
		if e.id == target.ID {
			ranking.Rank = i + 1
			ranking.Found = true
			break
		}
	}
	return ranking
}
