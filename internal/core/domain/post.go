package domain

import (
	"strings"
	"time"
)

// Post is user-authored content carrying text, an image, or both.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Likes      []string  `json:"likes"`
	CommentIDs []string  `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasBody reports whether the post has non-blank content or an image.
func (p *Post) HasBody() bool {
	return strings.TrimSpace(p.Content) != "" || strings.TrimSpace(p.Image) != ""
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment belongs to one post and one author.
type Comment struct {
	ID     string    `json:"id"`
	PostID string    `json:"postId"`
	UserID string    `json:"userId"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}
