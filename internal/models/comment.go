package models

import (
	"time"
)

// Comment is a top-level response embedded in a Post. It owns its replies.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Content   string    `json:"content" bson:"content"`
	Likes     LikeSet   `json:"likes" bson:"likes"`
	Replies   []Reply   `json:"replies" bson:"replies"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Reply is a response to a Comment, one level deeper
type Reply struct {
	ID        string    `json:"id" bson:"id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	Content   string    `json:"content" bson:"content"`
	Likes     LikeSet   `json:"likes" bson:"likes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewComment builds a comment without replies or likes
func NewComment(id, authorID, content string, now time.Time) Comment {
	return Comment{
		ID:        id,
		AuthorID:  authorID,
		Content:   content,
		Likes:     LikeSet{},
		Replies:   []Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewReply builds a reply without likes
func NewReply(id, authorID, content string, now time.Time) Reply {
	return Reply{
		ID:        id,
		AuthorID:  authorID,
		Content:   content,
		Likes:     LikeSet{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reply looks up a reply by id
func (c *Comment) Reply(replyID string) (*Reply, bool) {
	for i := range c.Replies {
		if c.Replies[i].ID == replyID {
			return &c.Replies[i], true
		}
	}
	return nil, false
}

// AppendReply adds r at the end; replies are kept in chronological order.
func (c *Comment) AppendReply(r Reply) {
	c.Replies = append(c.Replies, r)
}

// RemoveReply deletes a reply by id
func (c *Comment) RemoveReply(replyID string) (Reply, bool) {
	for i := range c.Replies {
		if c.Replies[i].ID != replyID {
			continue
		}
		removed := c.Replies[i]
		c.Replies = append(c.Replies[:i:i], c.Replies[i+1:]...)
		return removed, true
	}
	return Reply{}, false
}

// LikesOnReplies sums the like-sets of every reply
func (c *Comment) LikesOnReplies() int {
	total := 0
	for _, r := range c.Replies {
		total += r.Likes.Len()
	}
	return total
}

func (c Comment) clone() Comment {
	c.Likes = LikeSet(c.Likes.IDs())
	replies := make([]Reply, len(c.Replies))
	for i, r := range c.Replies {
		r.Likes = LikeSet(r.Likes.IDs())
		replies[i] = r
	}
	c.Replies = replies
	return c
}
