// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account in the Driftline store.
// PasswordHash is persisted in the backing store file but must never be
// returned by the API; handlers respond with UserView or AuthorSummary.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ItemID implements feed.Item so user listings can be cursor-paginated.
func (u *User) ItemID() string { return u.ID }
