// Package policy holds the pure permission rules for the post aggregate.
package policy

import "github.com/post-engagement-api/internal/models"

// CanManage reports whether actingUserID may edit or delete a comment or reply.
// The entity's own author and the author of the enclosing post both qualify.
func CanManage(actingUserID, entityAuthorID, postAuthorID string) bool {
	if actingUserID == "" {
		return false
	}
	return actingUserID == entityAuthorID || actingUserID == postAuthorID
}

// CanManagePost reports whether actingUserID owns the post
func CanManagePost(actingUserID string, post *models.Post) bool {
	return post != nil && actingUserID != "" && actingUserID == post.AuthorID
}

// CanPublish reports whether a role may create posts
func CanPublish(role models.Role) bool {
	return role == models.RoleAuthor
}

// CanReport reports whether user may download the engagement report of post
func CanReport(user *models.User, post *models.Post) bool {
	if user == nil || !CanPublish(user.Role) {
		return false
	}
	return CanManagePost(user.ID, post)
}
