package models

import "time"

// FriendshipStatus represents the status of a friendship edge.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a friend request awaiting a response.
	FriendshipStatusPending FriendshipStatus = "PENDING"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "ACCEPTED"
)

// Friendship represents a friendship edge between two users.
// Direction is preserved (requester sent the request) but an ACCEPTED edge
// is symmetric: either party sees the other in their feed. At most one edge
// exists per unordered {requester, addressee} pair; a PENDING edge blocks
// new requests between the same pair in both directions.
type Friendship struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requesterId"`
	AddresseeID string           `json:"addresseeId"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ItemID implements feed.Item.
func (f *Friendship) ItemID() string { return f.ID }

// Involves reports whether the edge connects the given pair, in either direction.
func (f *Friendship) Involves(userID, otherID string) bool {
	return (f.RequesterID == userID && f.AddresseeID == otherID) ||
		(f.RequesterID == otherID && f.AddresseeID == userID)
}

// OtherSide returns the user on the opposite end of the edge from userID.
func (f *Friendship) OtherSide(userID string) string {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}
