package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/report"
	"github.com/post-engagement-api/internal/service"
)

func TestReportService_Build(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "author", models.RoleAuthor)
	f.addUser(t, "fan", models.RoleReader)
	ctx := context.Background()

	quiet := f.publish(t, "author", "quiet post")
	popular := f.publish(t, "author", "popular post")
	_, err := f.svc.Post.ToggleLike(ctx, popular.ID, "fan")
	require.NoError(t, err)

	f.clock = f.clock.Add(72 * time.Hour)

	r, err := f.svc.Report.Build(ctx, popular.ID, "author")
	require.NoError(t, err)
	assert.Equal(t, popular.ID, r.PostID)
	assert.Equal(t, "User author", r.AuthorName)
	assert.Equal(t, 1, r.Metrics.TotalReactions)
	assert.Equal(t, 3, r.DaysSincePublication)
	assert.Equal(t, 1, r.Rank)
	assert.Equal(t, 2, r.TotalPosts)
	assert.Equal(t, "popular post", r.ContentPreview)

	r, err = f.svc.Report.Build(ctx, quiet.ID, "author")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Rank)
	assert.Equal(t, 2, r.TotalPosts)
}

func TestReportService_SinglePostAuthor(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "solo", models.RoleAuthor)
	post := f.publish(t, "solo", "only one")

	r, err := f.svc.Report.Build(context.Background(), post.ID, "solo")

	require.NoError(t, err)
	assert.Equal(t, 1, r.Rank)
	assert.Equal(t, 1, r.TotalPosts)
}

func TestReportService_Rejections(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "owner", models.RoleAuthor)
	f.addUser(t, "rival", models.RoleAuthor)
	f.addUser(t, "reader", models.RoleReader)
	post := f.publish(t, "owner", "mine")

	tests := []struct {
		name     string
		postID   string
		userID   string
		wantKind service.Kind
	}{
		{name: "missing user id", postID: post.ID, userID: "", wantKind: service.KindValidation},
		{name: "reader", postID: post.ID, userID: "reader", wantKind: service.KindForbidden},
		{name: "unknown user", postID: post.ID, userID: "ghost", wantKind: service.KindForbidden},
		{name: "another author", postID: post.ID, userID: "rival", wantKind: service.KindForbidden},
		{name: "missing post", postID: "nope", userID: "owner", wantKind: service.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Report.Build(context.Background(), tt.postID, tt.userID)
			assert.Equal(t, tt.wantKind, service.KindOf(err))
		})
	}
}

func TestReportService_WriteUsesComposer(t *testing.T) {
	f := newFixture(t)
	r := &report.Report{PostID: "p1"}
	var buf bytes.Buffer

	require.NoError(t, f.svc.Report.Write(&buf, r))

	assert.Equal(t, "%PDF-1.3 mock", buf.String())
	require.Len(t, f.composer.Reports, 1)
	assert.Same(t, r, f.composer.Reports[0])
}
