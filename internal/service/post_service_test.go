package service_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

func TestPostService_CreateRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "1", models.RoleAuthor)
	ctx := context.Background()
	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	created, err := f.svc.Post.Create(ctx, &models.CreatePostRequest{AuthorID: "1", Content: "  Hello  ", Image: image})
	require.NoError(t, err)

	got, err := f.svc.Post.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Content)
	assert.Equal(t, image, got.Image)
	require.NotNil(t, got.Author)
	assert.Equal(t, "1", got.Author.ID)
	assert.Equal(t, models.RoleAuthor, got.Author.Role)
	assert.Empty(t, got.Likes)
	assert.NotNil(t, got.Likes)
	assert.Empty(t, got.Comments)
}

func TestPostService_CreateRejections(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "author", models.RoleAuthor)
	f.addUser(t, "reader", models.RoleReader)
	threeMB := base64.StdEncoding.EncodeToString(make([]byte, 3*1024*1024))

	tests := []struct {
		name     string
		req      *models.CreatePostRequest
		wantKind service.Kind
	}{
		{name: "blank content", req: &models.CreatePostRequest{AuthorID: "author", Content: "   "}, wantKind: service.KindValidation},
		{name: "missing author", req: &models.CreatePostRequest{Content: "x"}, wantKind: service.KindValidation},
		{name: "image over 2.5MB", req: &models.CreatePostRequest{AuthorID: "author", Content: "x", Image: threeMB}, wantKind: service.KindPayloadTooLarge},
		{name: "image not base64", req: &models.CreatePostRequest{AuthorID: "author", Content: "x", Image: "%%%%"}, wantKind: service.KindValidation},
		{name: "reader may not publish", req: &models.CreatePostRequest{AuthorID: "reader", Content: "x"}, wantKind: service.KindForbidden},
		{name: "unknown user", req: &models.CreatePostRequest{AuthorID: "ghost", Content: "x"}, wantKind: service.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Post.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, service.KindOf(err))
		})
	}

	count, _ := f.posts.Count(context.Background())
	assert.Zero(t, count, "rejected posts must not be persisted")
}

func TestPostService_UpdateOnlyByOwner(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "owner", models.RoleAuthor)
	f.addUser(t, "other", models.RoleAuthor)
	f.addUser(t, "reader", models.RoleReader)
	post := f.publish(t, "owner", "v1")
	ctx := context.Background()

	_, err := f.svc.Post.Update(ctx, post.ID, &models.UpdatePostRequest{UserID: "other", Content: "hijack"})
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	_, err = f.svc.Post.Update(ctx, post.ID, &models.UpdatePostRequest{UserID: "reader", Content: "hijack"})
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	_, err = f.svc.Post.Update(ctx, "missing", &models.UpdatePostRequest{UserID: "owner", Content: "v2"})
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	f.tick()
	updated, err := f.svc.Post.Update(ctx, post.ID, &models.UpdatePostRequest{UserID: "owner", Content: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.Equal(t, int64(2), f.stored(t, post.ID).Version)
}

func TestPostService_Delete(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "owner", models.RoleAuthor)
	f.addUser(t, "other", models.RoleAuthor)
	post := f.publish(t, "owner", "bye")
	ctx := context.Background()

	_, err := f.svc.Post.Delete(ctx, post.ID, "")
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = f.svc.Post.Delete(ctx, post.ID, "other")
	assert.Equal(t, service.KindForbidden, service.KindOf(err))

	deleted, err := f.svc.Post.Delete(ctx, post.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)

	_, err = f.svc.Post.Get(ctx, post.ID)
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	_, err = f.svc.Post.Delete(ctx, post.ID, "owner")
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestPostService_ToggleLikeIsInvolution(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "owner", models.RoleAuthor)
	f.addUser(t, "fan", models.RoleReader)
	post := f.publish(t, "owner", "like me")
	ctx := context.Background()

	liked, err := f.svc.Post.ToggleLike(ctx, post.ID, "fan")
	require.NoError(t, err)
	assert.Equal(t, []string{"fan"}, liked.Likes)

	unliked, err := f.svc.Post.ToggleLike(ctx, post.ID, "fan")
	require.NoError(t, err)
	assert.Equal(t, post.Likes, unliked.Likes)

	_, err = f.svc.Post.ToggleLike(ctx, post.ID, "ghost")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = f.svc.Post.ToggleLike(ctx, "missing", "fan")
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestPostService_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "a", models.RoleAuthor)
	f.addUser(t, "b", models.RoleAuthor)
	first := f.publish(t, "a", "first")
	second := f.publish(t, "b", "second")
	third := f.publish(t, "a", "third")
	ctx := context.Background()
	lookups := f.users.GetByIDsCalls

	all, err := f.svc.Post.List(ctx, models.PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, lookups+1, f.users.GetByIDsCalls, "a listing resolves all authors in one lookup")
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := f.svc.Post.List(ctx, models.PostFilter{AuthorID: "a"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestPostService_DeletedAuthorProjectsAsNull(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "gone", models.RoleAuthor)
	post := f.publish(t, "gone", "orphan")

	_, err := f.svc.User.Delete(context.Background(), "gone", "gone")
	require.NoError(t, err)

	got, err := f.svc.Post.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Author)
}
