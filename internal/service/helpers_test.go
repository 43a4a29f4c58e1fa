package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/post-engagement-api/internal/config"
	"github.com/post-engagement-api/internal/mocks"
	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/service"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *service.Services
	users    *mocks.MockUserRepository
	posts    *mocks.MockPostRepository
	composer *mocks.MockComposer
	clock    time.Time
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		Posts: config.PostsConfig{
			MaxImageBytes:      models.MaxImageBytes,
			ReportPreviewRunes: 500,
		},
	}
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	repos, users, posts := mocks.NewRepositories()
	f := &fixture{
		users:    users,
		posts:    posts,
		composer: mocks.NewMockComposer(),
		clock:    testNow,
	}
	f.svc = service.NewServices(repos, testConfig(), zerolog.Nop(),
		service.WithClock(func() time.Time { return f.clock }),
		service.WithComposer(f.composer),
	)
	return f
}

// tick advances the clock so creation order is observable
func (f *fixture) tick() {
	f.clock = f.clock.Add(time.Minute)
}

func (f *fixture) addUser(t testing.TB, id string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		ID:        id,
		Name:      "User " + id,
		Email:     id + "@example.com",
		Role:      role,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) publish(t testing.TB, authorID, content string) *models.PostView {
	t.Helper()
	f.tick()
	post, err := f.svc.Post.Create(context.Background(), &models.CreatePostRequest{AuthorID: authorID, Content: content})
	require.NoError(t, err)
	return post
}

func (f *fixture) stored(t testing.TB, postID string) *models.Post {
	t.Helper()
	post, err := f.posts.GetByID(context.Background(), postID)
	require.NoError(t, err)
	require.NotNil(t, post)
	return post
}
