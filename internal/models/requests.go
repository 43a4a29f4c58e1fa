package models

// RegisterRequest is the body of POST /auth/register/{user|author}
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Empty fields are left unchanged.
type UpdateUserRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name" validate:"omitempty,min=1"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// CreatePostRequest is the body of POST /posts
type CreatePostRequest struct {
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
}

// UpdatePostRequest is the body of PUT /posts/{postId}
type UpdatePostRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// ContentRequest carries the acting user and text for comments and replies
type ContentRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// ActorRequest carries only the acting user (likes, deletes)
type ActorRequest struct {
	UserID string `json:"userId"`
}
