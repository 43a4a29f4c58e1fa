package models

import "time"

// UserView is the sanitized projection of a User; it never carries credentials
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserView projects u, returning nil for a missing user
func NewUserView(u *User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// ReplyView is the response shape of a Reply
type ReplyView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    *UserView `json:"author"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is the response shape of a Comment and its replies
type CommentView struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Author    *UserView   `json:"author"`
	Likes     []string    `json:"likes"`
	Replies   []ReplyView `json:"replies"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PostView is the full sanitized aggregate returned by every post mutation
type PostView struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Image     string        `json:"image"`
	Author    *UserView     `json:"author"`
	Likes     []string      `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AuthView is returned by register and login
type AuthView struct {
	UserView
	Token string `json:"token,omitempty"`
}

// DeletedView acknowledges a deletion
type DeletedView struct {
	ID string `json:"id"`
}
