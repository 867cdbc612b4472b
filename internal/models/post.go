package models

import "time"

// Post represents a post in the Driftline application.
// CreatedAt is assigned once at creation and never changes; the feed
// ordering depends on that.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemID implements feed.Item.
func (p *Post) ItemID() string { return p.ID }
