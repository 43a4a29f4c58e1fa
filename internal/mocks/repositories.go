package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/post-engagement-api/internal/models"
	"github.com/post-engagement-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu            sync.Mutex
	Users         map[string]*models.User
	EmailToUser   map[string]*models.User
	InsertError   error
	GetError      error
	GetByIDsCalls int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	email := strings.ToLower(user.Email)
	if _, taken := m.EmailToUser[email]; taken {
		return repository.ErrDuplicateEmail
	}
	stored := user.Clone()
	m.Users[user.ID] = stored
	m.EmailToUser[email] = stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Users[id].Clone(), nil
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetByIDsCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	users := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			users[id] = u.Clone()
		}
	}
	return users, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.EmailToUser[strings.ToLower(email)].Clone(), nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.EmailToUser[strings.ToLower(email)]
	return exists, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u.Clone())
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.Users[user.ID]
	if !ok {
		return nil
	}
	email := strings.ToLower(user.Email)
	if other, taken := m.EmailToUser[email]; taken && other.ID != user.ID {
		return repository.ErrDuplicateEmail
	}
	delete(m.EmailToUser, strings.ToLower(current.Email))
	stored := user.Clone()
	m.Users[user.ID] = stored
	m.EmailToUser[email] = stored
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return false, nil
	}
	delete(m.Users, id)
	delete(m.EmailToUser, strings.ToLower(u.Email))
	return true, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockPostRepository is an in-memory PostRepository with version checks.
// It stores deep copies so callers cannot mutate state behind its back.
type MockPostRepository struct {
	mu        sync.Mutex
	Posts     map[string]*models.Post
	order     []string
	SaveError error
	// SaveFunc runs before every save; returning an error aborts it
	SaveFunc  func(post *models.Post) error
	SaveCalls int
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.Post),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.Version = 1
	m.Posts[post.ID] = post.Clone()
	m.order = append(m.order, post.ID)
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Posts[id].Clone(), nil
}

// List orders newest first; posts created at the same instant keep reverse insertion order
func (m *MockPostRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := []*models.Post{}
	for i := len(m.order) - 1; i >= 0; i-- {
		p, ok := m.Posts[m.order[i]]
		if !ok {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		posts = append(posts, p.Clone())
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *MockPostRepository) Save(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveFunc != nil {
		if err := m.SaveFunc(post); err != nil {
			return err
		}
	}
	if m.SaveError != nil {
		return m.SaveError
	}
	stored, ok := m.Posts[post.ID]
	if !ok || stored.Version != post.Version {
		return repository.ErrStaleWrite
	}
	post.Version++
	m.Posts[post.ID] = post.Clone()
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Posts[id]; !ok {
		return false, nil
	}
	delete(m.Posts, id)
	return true, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Posts), nil
}

// NewRepositories wires fresh mocks into a Repositories bundle
func NewRepositories() (*repository.Repositories, *MockUserRepository, *MockPostRepository) {
	users := NewMockUserRepository()
	posts := NewMockPostRepository()
	return &repository.Repositories{User: users, Post: posts}, users, posts
}
