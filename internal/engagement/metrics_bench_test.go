package engagement

import (
	"fmt"
	"testing"

	"github.com/post-engagement-api/internal/models"
)

// buildPosts creates n posts, each with a few comments, replies and likes
func buildPosts(n int) []*models.Post {
	posts := make([]*models.Post, n)
	for i := 0; i < n; i++ {
		p := models.NewPost(fmt.Sprintf("p%d", i), "author", "content", "", epoch)
		for l := 0; l < i%7; l++ {
			p.Likes = append(p.Likes, fmt.Sprintf("u%d", l))
		}
		for c := 0; c < 10; c++ {
			comment := models.NewComment(fmt.Sprintf("c%d-%d", i, c), "u1", "comment", epoch)
			comment.Likes = models.LikeSet{"u1", "u2"}
			for r := 0; r < 5; r++ {
				reply := models.NewReply(fmt.Sprintf("r%d-%d-%d", i, c, r), "u2", "reply", epoch)
				reply.Likes = models.LikeSet{"u3"}
				comment.AppendReply(reply)
			}
			p.PrependComment(comment)
		}
		posts[i] = p
	}
	return posts
}

// BenchmarkCompute measures metric computation over one aggregate
func BenchmarkCompute(b *testing.B) {
	post := buildPosts(1)[0]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compute(post, epoch)
	}
}

// BenchmarkRank measures ranking across author post counts
func BenchmarkRank(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		posts := buildPosts(n)
		target := posts[n/2]

		b.Run(fmt.Sprintf("posts_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Rank(target, posts)
			}
		})
	}
}
