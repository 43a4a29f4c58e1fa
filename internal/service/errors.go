package service

import (
	"errors"
	"fmt"

	"github.com/post-engagement-api/internal/validation"
)

// Kind classifies a domain error; the API layer maps kinds to status codes
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindPayloadTooLarge Kind = "payload_too_large"
)

// Error is a domain failure safe to show to the caller
type Error struct {
	Kind     Kind
	Resource string
	Message  string
	Fields   []validation.ValidationError
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on kind and, when the target names one, on resource
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Resource == "" || t.Resource == e.Resource)
}

// Not-found sentinels, one per addressable resource
var (
	ErrUserNotFound    = &Error{Kind: KindNotFound, Resource: "user", Message: "User not found."}
	ErrPostNotFound    = &Error{Kind: KindNotFound, Resource: "post", Message: "Post not found."}
	ErrCommentNotFound = &Error{Kind: KindNotFound, Resource: "comment", Message: "Comment not found."}
	ErrReplyNotFound   = &Error{Kind: KindNotFound, Resource: "reply", Message: "Reply not found."}
)

var (
	errConcurrentEdit = &Error{
		Kind:     KindConflict,
		Resource: "post",
		Message:  "The post was changed by someone else. Reload it and try again.",
	}
	errDuplicateEmail = &Error{
		Kind:     KindConflict,
		Resource: "user",
		Message:  "An account with this email already exists.",
	}
	errInvalidCredentials = &Error{
		Kind:    KindUnauthenticated,
		Message: "Invalid email or password.",
	}
)

func invalid(message string, fields ...validation.ValidationError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// KindOf returns the kind of a domain error, or "" for anything unexpected
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

func imageTooLarge(limit int64) *Error {
	return &Error{
		Kind:     KindPayloadTooLarge,
		Resource: "image",
		Message:  fmt.Sprintf("Image is too large. Please upload an image smaller than %.1f MB.", float64(limit)/(1<<20)),
	}
}
