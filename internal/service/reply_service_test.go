package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

// seedThread creates a post by "owner" with one comment by "writer"
func seedThread(t *testing.T, f *fixture) (postID, commentID string) {
	t.Helper()
	f.addUser(t, "owner", models.RoleAuthor)
	f.addUser(t, "writer", models.RoleReader)
	f.addUser(t, "stranger", models.RoleReader)
	post := f.publish(t, "owner", "post")

	view, err := f.svc.Comment.Add(context.Background(), post.ID, &models.ContentRequest{UserID: "writer", Content: "comment"})
	require.NoError(t, err)
	return post.ID, view.Comments[0].ID
}

func TestReplyService_AppendsChronologically(t *testing.T) {
	f := newFixture(t)
	postID, commentID := seedThread(t, f)
	ctx := context.Background()

	_, err := f.svc.Reply.Add(ctx, postID, commentID, &models.ContentRequest{UserID: "stranger", Content: "first"})
	require.NoError(t, err)
	view, err := f.svc.Reply.Add(ctx, postID, commentID, &models.ContentRequest{UserID: "writer", Content: "second"})
	require.NoError(t, err)

	replies := view.Comments[0].Replies
	require.Len(t, replies, 2)
	assert.Equal(t, "first", replies[0].Content)
	assert.Equal(t, "second", replies[1].Content)
	require.NotNil(t, replies[0].Author)
	assert.Equal(t, "stranger", replies[0].Author.ID)
}

func TestReplyService_NotFoundLevels(t *testing.T) {
	f := newFixture(t)
	postID, commentID := seedThread(t, f)
	ctx := context.Background()
	req := &models.ContentRequest{UserID: "writer", Content: "x"}

	_, err := f.svc.Reply.Add(ctx, postID, "no-comment", req)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	_, err = f.svc.Reply.Update(ctx, postID, commentID, "no-reply", req)
	assert.ErrorIs(t, err, service.ErrReplyNotFound)

	_, err = f.svc.Reply.Update(ctx, "no-post", commentID, "no-reply", req)
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	_, err = f.svc.Reply.ToggleLike(ctx, postID, commentID, "no-reply", "writer")
	assert.ErrorIs(t, err, service.ErrReplyNotFound)
}

func TestReplyService_PermissionsMatchComments(t *testing.T) {
	f := newFixture(t)
	postID, commentID := seedThread(t, f)
	ctx := context.Background()

	view, err := f.svc.Reply.Add(ctx, postID, commentID, &models.ContentRequest{UserID: "writer", Content: "reply"})
	require.NoError(t, err)
	replyID := view.Comments[0].Replies[0].ID

	_, err = f.svc.Reply.Update(ctx, postID, commentID, replyID, &models.ContentRequest{UserID: "stranger", Content: "nope"})
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	_, err = f.svc.Reply.Delete(ctx, postID, commentID, replyID, "stranger")
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	view, err = f.svc.Reply.Update(ctx, postID, commentID, replyID, &models.ContentRequest{UserID: "owner", Content: "moderated"})
	require.NoError(t, err)
	assert.Equal(t, "moderated", view.Comments[0].Replies[0].Content)

	view, err = f.svc.Reply.Delete(ctx, postID, commentID, replyID, "owner")
	require.NoError(t, err)
	assert.Empty(t, view.Comments[0].Replies)
	assert.Len(t, view.Comments, 1, "deleting a reply leaves its comment")
}

func TestReplyService_ToggleLike(t *testing.T) {
	f := newFixture(t)
	postID, commentID := seedThread(t, f)
	ctx := context.Background()

	view, err := f.svc.Reply.Add(ctx, postID, commentID, &models.ContentRequest{UserID: "writer", Content: "reply"})
	require.NoError(t, err)
	replyID := view.Comments[0].Replies[0].ID

	view, err = f.svc.Reply.ToggleLike(ctx, postID, commentID, replyID, "stranger")
	require.NoError(t, err)
	assert.Equal(t, []string{"stranger"}, view.Comments[0].Replies[0].Likes)

	view, err = f.svc.Reply.ToggleLike(ctx, postID, commentID, replyID, "stranger")
	require.NoError(t, err)
	assert.Empty(t, view.Comments[0].Replies[0].Likes)

	_, err = f.svc.Reply.ToggleLike(ctx, postID, commentID, replyID, "")
	assert.Equal(t, service.KindValidation, service.KindOf(err))
}
