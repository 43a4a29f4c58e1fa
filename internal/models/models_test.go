package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threadedPost() *Post {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	post := NewPost("p1", "author", "hello", "", now)

	first := NewComment("c1", "reader", "first", now)
	first.AppendReply(NewReply("r1", "author", "thanks", now))
	first.AppendReply(NewReply("r2", "reader", "welcome", now))
	post.PrependComment(first)

	second := NewComment("c2", "other", "second", now)
	second.AppendReply(NewReply("r3", "reader", "agreed", now))
	post.PrependComment(second)

	return post
}

func TestPost_PrependComment(t *testing.T) {
	post := threadedPost()

	require.Len(t, post.Comments, 2)
	assert.Equal(t, "c2", post.Comments[0].ID, "newest comment comes first")
	assert.Equal(t, "c1", post.Comments[1].ID)
	assert.Equal(t, []string{"r1", "r2"}, []string{post.Comments[1].Replies[0].ID, post.Comments[1].Replies[1].ID})
}

func TestPost_RemoveCommentTakesSubtree(t *testing.T) {
	post := threadedPost()

	removed, ok := post.RemoveComment("c1")

	require.True(t, ok)
	assert.Len(t, removed.Replies, 2)
	assert.Len(t, post.Comments, 1)
	assert.Equal(t, 1, post.ReplyCount())
	_, found := post.Comment("c1")
	assert.False(t, found)

	_, ok = post.RemoveComment("c1")
	assert.False(t, ok, "removing twice finds nothing")
}

func TestComment_RemoveReply(t *testing.T) {
	post := threadedPost()
	comment, ok := post.Comment("c1")
	require.True(t, ok)

	removed, ok := comment.RemoveReply("r1")

	require.True(t, ok)
	assert.Equal(t, "thanks", removed.Content)
	require.Len(t, comment.Replies, 1)
	assert.Equal(t, "r2", comment.Replies[0].ID)

	_, ok = comment.Reply("r1")
	assert.False(t, ok)
}

func TestLikeSet_Toggle(t *testing.T) {
	var likes LikeSet

	assert.True(t, likes.Toggle("u1"))
	assert.True(t, likes.Toggle("u2"))
	assert.True(t, likes.Has("u1"))
	assert.Equal(t, 2, likes.Len())

	assert.False(t, likes.Toggle("u1"))
	assert.False(t, likes.Has("u1"))
	assert.Equal(t, []string{"u2"}, likes.IDs())
}

func TestLikeSet_IDsNeverNil(t *testing.T) {
	var likes LikeSet
	assert.NotNil(t, likes.IDs())
	assert.Empty(t, likes.IDs())
}

func TestPost_AuthorIDs(t *testing.T) {
	post := threadedPost()
	assert.Equal(t, []string{"author", "other", "reader"}, post.AuthorIDs())
}

func TestPost_CloneIsDeep(t *testing.T) {
	post := threadedPost()
	post.Comments[0].Likes.Toggle("u1")

	clone := post.Clone()
	clone.Likes.Toggle("u9")
	clone.Comments[0].Likes.Toggle("u1")
	clone.Comments[1].Replies[0].Content = "changed"
	clone.Comments[1].Replies[0].Likes.Toggle("u2")

	assert.Empty(t, post.Likes)
	assert.True(t, post.Comments[0].Likes.Has("u1"))
	assert.Equal(t, "thanks", post.Comments[1].Replies[0].Content)
	assert.False(t, post.Comments[1].Replies[0].Likes.Has("u2"))

	var nilPost *Post
	assert.Nil(t, nilPost.Clone())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{in: "user", want: RoleReader, ok: true},
		{in: "reader", want: RoleReader, ok: true},
		{in: "author", want: RoleAuthor, ok: true},
		{in: "admin", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
