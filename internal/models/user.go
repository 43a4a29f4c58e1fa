package models

import (
	"time"
)

// Role is the publishing role of an account
type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
)

// ParseRole maps a registration path segment or stored value to a Role.
// "user" is accepted as the public name of the reader role.
func ParseRole(value string) (Role, bool) {
	switch value {
	case "user", string(RoleReader):
		return RoleReader, true
	case string(RoleAuthor):
		return RoleAuthor, true
	default:
		return "", false
	}
}

// User represents an account in the identity store
type User struct {
	ID           string    `json:"id" bson:"_id" db:"id"`
	Name         string    `json:"name" bson:"name" db:"name"`
	Email        string    `json:"email" bson:"email" db:"email"`
	Role         Role      `json:"role" bson:"role" db:"role"`
	PasswordHash string    `json:"-" bson:"password_hash" db:"password_hash" msgpack:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`
}

// Clone returns a copy safe to hand out of a cache
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
