package models

import "github.com/samber/lo"

// LikeSet holds the ids of users who liked an entity. Each id appears at most once.
type LikeSet []string

// Has reports whether userID is in the set
func (s LikeSet) Has(userID string) bool {
	return lo.Contains(s, userID)
}

// Toggle adds userID when absent and removes it when present.
// It returns true when the user now likes the entity.
func (s *LikeSet) Toggle(userID string) bool {
	if s.Has(userID) {
		*s = lo.Without(*s, userID)
		return false
	}
	*s = append(*s, userID)
	return true
}

// Len returns the number of likes
func (s LikeSet) Len() int {
	return len(s)
}

// IDs returns a copy of the member ids that is never nil
func (s LikeSet) IDs() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
