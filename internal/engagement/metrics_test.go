package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post-engagement-api/internal/models"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCompute_CommentLikedByAuthor(t *testing.T) {
	post := models.NewPost("p1", "1", "Hello", "", epoch)
	comment := models.NewComment("c1", "2", "Nice!", epoch)
	post.PrependComment(comment)

	c, ok := post.Comment("c1")
	require.True(t, ok)
	c.Likes.Toggle("1")

	m := Compute(post, epoch)

	assert.Equal(t, Metrics{
		LikesCount:        0,
		CommentCount:      1,
		RepliesCount:      0,
		CommentLikesTotal: 1,
		ReplyLikesTotal:   0,
		TotalReactions:    1,
	}, m)
}

func TestCompute_AllLevels(t *testing.T) {
	post := models.NewPost("p1", "a", "text", "", epoch)
	post.Likes = models.LikeSet{"u1", "u2"}

	first := models.NewComment("c1", "u1", "one", epoch)
	first.Likes = models.LikeSet{"a"}
	r1 := models.NewReply("r1", "u2", "r", epoch)
	r1.Likes = models.LikeSet{"a", "u1", "u3"}
	first.AppendReply(r1)
	first.AppendReply(models.NewReply("r2", "u3", "r", epoch))

	second := models.NewComment("c2", "u2", "two", epoch)
	post.PrependComment(first)
	post.PrependComment(second)

	m := Compute(post, epoch.Add(50*time.Hour))

	assert.Equal(t, 2, m.LikesCount)
	assert.Equal(t, 2, m.CommentCount)
	assert.Equal(t, 2, m.RepliesCount)
	assert.Equal(t, 1, m.CommentLikesTotal)
	assert.Equal(t, 3, m.ReplyLikesTotal)
	assert.Equal(t, 6, m.TotalReactions)
	assert.Equal(t, 2, m.DaysSincePublication)
	assert.Equal(t, m.TotalReactions, TotalReactions(post))
}

func TestCompute_DaysNeverNegative(t *testing.T) {
	post := models.NewPost("p1", "a", "text", "", epoch)

	m := Compute(post, epoch.Add(-72*time.Hour))

	assert.Equal(t, 0, m.DaysSincePublication)
}

func TestRank(t *testing.T) {
	// store order: newest first
	newest := models.NewPost("p3", "a", "x", "", epoch.Add(2*time.Hour))
	middle := models.NewPost("p2", "a", "x", "", epoch.Add(time.Hour))
	oldest := models.NewPost("p1", "a", "x", "", epoch)
	middle.Likes = models.LikeSet{"u1", "u2"}
	oldest.Likes = models.LikeSet{"u1"}
	posts := []*models.Post{newest, middle, oldest}

	t.Run("most reacted first", func(t *testing.T) {
		r := Rank(middle, posts)
		assert.Equal(t, Ranking{Rank: 1, TotalPosts: 3, Found: true}, r)
	})

	t.Run("ties keep store order", func(t *testing.T) {
		newest.Likes = models.LikeSet{"u9"}
		defer func() { newest.Likes = models.LikeSet{} }()

		assert.Equal(t, 2, Rank(newest, posts).Rank)
		assert.Equal(t, 3, Rank(oldest, posts).Rank)
	})

	t.Run("single post author", func(t *testing.T) {
		r := Rank(oldest, []*models.Post{oldest})
		assert.Equal(t, 1, r.Rank)
		assert.Equal(t, 1, r.TotalPosts)
	})

	t.Run("missing target falls back to total", func(t *testing.T) {
		stranger := models.NewPost("px", "a", "x", "", epoch)
		r := Rank(stranger, posts)
		assert.False(t, r.Found)
		assert.Equal(t, 3, r.Rank)
	})

	t.Run("rank within bounds", func(t *testing.T) {
		for _, p := range posts {
			r := Rank(p, posts)
			assert.GreaterOrEqual(t, r.Rank, 1)
			assert.LessOrEqual(t, r.Rank, r.TotalPosts)
		}
	})
}
