package models

import "time"

// ReactionTarget identifies which table a reaction points into.
type ReactionTarget string

const (
	// ReactionTargetPost marks a reaction on a post.
	ReactionTargetPost ReactionTarget = "POST"
	// ReactionTargetComment marks a reaction on a comment.
	ReactionTargetComment ReactionTarget = "COMMENT"
)

// Reaction represents an emoji reaction on a post or comment.
// At most one reaction exists per (TargetType, TargetID, AuthorID) triple;
// reacting again with the same emoji removes it, a different emoji updates
// the existing row in place.
type Reaction struct {
	ID         string         `json:"id"`
	TargetType ReactionTarget `json:"targetType"`
	TargetID   string         `json:"targetId"`
	AuthorID   string         `json:"authorId"`
	Emoji      string         `json:"emoji"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ItemID implements feed.Item.
func (r *Reaction) ItemID() string { return r.ID }
