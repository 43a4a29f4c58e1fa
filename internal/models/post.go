package models

import (
	"time"
)

// MaxImageBytes is the default ceiling on the decoded size of a post image (2.5 MB)
const MaxImageBytes = 2621440

// Post is the aggregate root: a post together with its embedded comments and
// replies, loaded and persisted as one unit.
type Post struct {
	ID        string    `json:"id" bson:"_id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Content   string    `json:"content" bson:"content"`
	Image     string    `json:"image" bson:"image"`
	Likes     LikeSet   `json:"likes" bson:"likes"`
	Comments  []Comment `json:"comments" bson:"comments"`
	Version   int64     `json:"version" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PostFilter narrows a post listing
type PostFilter struct {
	AuthorID string
}

// NewPost builds an empty aggregate owned by authorID
func NewPost(id, authorID, content, image string, now time.Time) *Post {
	return &Post{
		ID:        id,
		AuthorID:  authorID,
		Content:   content,
		Image:     image,
		Likes:     LikeSet{},
		Comments:  []Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Comment looks up a top-level comment by id
func (p *Post) Comment(commentID string) (*Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i], true
		}
	}
	return nil, false
}

// PrependComment inserts c at the head of the comment list; newest comments are shown first.
func (p *Post) PrependComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// RemoveComment deletes the subtree rooted at commentID: the comment and every
// reply it owns. The removed subtree is returned so callers can account for it.
func (p *Post) RemoveComment(commentID string) (Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID != commentID {
			continue
		}
		removed := p.Comments[i]
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return removed, true
	}
	return Comment{}, false
}

// ReplyCount returns the number of replies across all comments
func (p *Post) ReplyCount() int {
	total := 0
	for _, c := range p.Comments {
		total += len(c.Replies)
	}
	return total
}

// AuthorIDs returns every distinct author referenced by the aggregate, in
// first-seen order (post, then comments, then their replies).
func (p *Post) AuthorIDs() []string {
	seen := map[string]bool{}
	var ids []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	add(p.AuthorID)
	for _, c := range p.Comments {
		add(c.AuthorID)
		for _, r := range c.Replies {
			add(r.AuthorID)
		}
	}
	return ids
}

// Clone returns a deep copy of the aggregate
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Likes = LikeSet(p.Likes.IDs())
	clone.Comments = make([]Comment, len(p.Comments))
	for i, c := range p.Comments {
		clone.Comments[i] = c.clone()
	}
	return &clone
}
