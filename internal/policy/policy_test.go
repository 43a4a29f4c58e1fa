package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/post-engagement-api/internal/models"
)

func TestCanManage(t *testing.T) {
	tests := []struct {
		name     string
		acting   string
		entity   string
		postAuth string
		want     bool
	}{
		{name: "entity author", acting: "u1", entity: "u1", postAuth: "p1", want: true},
		{name: "post author moderates", acting: "p1", entity: "u1", postAuth: "p1", want: true},
		{name: "stranger", acting: "u2", entity: "u1", postAuth: "p1", want: false},
		{name: "empty acting user", acting: "", entity: "", postAuth: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManage(tt.acting, tt.entity, tt.postAuth))
		})
	}
}

func TestCanManagePost(t *testing.T) {
	post := &models.Post{ID: "p", AuthorID: "a1"}

	assert.True(t, CanManagePost("a1", post))
	assert.False(t, CanManagePost("a2", post))
	assert.False(t, CanManagePost("a1", nil))
}

func TestCanReport(t *testing.T) {
	post := &models.Post{ID: "p", AuthorID: "a1"}

	assert.True(t, CanReport(&models.User{ID: "a1", Role: models.RoleAuthor}, post))
	assert.False(t, CanReport(&models.User{ID: "a1", Role: models.RoleReader}, post), "readers never get reports")
	assert.False(t, CanReport(&models.User{ID: "a2", Role: models.RoleAuthor}, post), "only the owner")
	assert.False(t, CanReport(nil, post))
}

func TestCanPublish(t *testing.T) {
	assert.True(t, CanPublish(models.RoleAuthor))
	assert.False(t, CanPublish(models.RoleReader))
	assert.False(t, CanPublish(models.Role("admin")))
}
