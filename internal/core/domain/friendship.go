package domain

import (
	"errors"
	"time"
)

// FriendshipStatus represents the lifecycle state of a friendship record.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
	// FriendshipBlocked is part of the stored status set but no operation
	// currently transitions into it. Kept so existing documents carrying it
	// still decode; a block operation would be a product decision.
	FriendshipBlocked FriendshipStatus = "blocked"
)

var ErrFriendshipNotFound = errors.New("friendship not found")
var ErrFriendshipExists = errors.New("friendship already exists or is pending")
var ErrFriendshipNotPending = errors.New("friend request already responded to")
var ErrSelfFriendship = errors.New("cannot send a friend request to yourself")

// IsResponse reports whether s is a valid answer to a pending request.
func (s FriendshipStatus) IsResponse() bool {
	return s == FriendshipAccepted || s == FriendshipDeclined
}

// CanonicalPair returns the two user IDs in sorted order. Friendships store
// their participants this way so the uniqueness index and existence lookups
// are independent of who initiated — {A,B} and {B,A} hit the same document.
func CanonicalPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Friendship is the single record describing the relationship between two
// distinct users. At most one exists per unordered pair (unique index on
// Users). Requester/Recipient preserve the direction of the current request.
type Friendship struct {
	ID          string           `json:"id"`
	Users       [2]string        `json:"users"`
	RequesterID string           `json:"requester"`
	RecipientID string           `json:"recipient"`
	Status      FriendshipStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Involves reports whether userID is one of the two participants.
func (f *Friendship) Involves(userID string) bool {
	return f.Users[0] == userID || f.Users[1] == userID
}

// CounterpartOf returns the other participant's ID.
func (f *Friendship) CounterpartOf(userID string) string {
	if f.Users[0] == userID {
		return f.Users[1]
	}
	return f.Users[0]
}
