package models

import "time"

// AuthorSummary is the minimal author identity embedded in enriched views.
// A nil AuthorSummary serializes as JSON null; display code must tolerate
// authors that were deleted after their content was created.
type AuthorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UserView is the API shape of a user profile. It never carries the
// password hash.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReactionView is a reaction with its author resolved.
type ReactionView struct {
	ID        string         `json:"id"`
	Emoji     string         `json:"emoji"`
	Author    *AuthorSummary `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
}

// PostView is a post with author, reactions and comment count embedded.
type PostView struct {
	ID           string         `json:"id"`
	Author       *AuthorSummary `json:"author"`
	Content      string         `json:"content"`
	ImageURL     string         `json:"imageUrl,omitempty"`
	Reactions    []ReactionView `json:"reactions"`
	CommentCount int            `json:"commentCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// CommentView is a comment with author and reactions embedded.
type CommentView struct {
	ID        string         `json:"id"`
	PostID    string         `json:"postId"`
	Author    *AuthorSummary `json:"author"`
	Content   string         `json:"content"`
	Reactions []ReactionView `json:"reactions"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FriendshipView is a friendship edge with both endpoints resolved.
type FriendshipView struct {
	ID        string           `json:"id"`
	Requester *AuthorSummary   `json:"requester"`
	Addressee *AuthorSummary   `json:"addressee"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ToView converts a user entity to its API shape.
func (u *User) ToView() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Summary converts a user entity to the embeddable author identity.
func (u *User) Summary() *AuthorSummary {
	return &AuthorSummary{ID: u.ID, Name: u.Username, AvatarURL: u.AvatarURL}
}
