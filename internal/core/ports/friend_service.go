package ports

import (
	"context"
	"time"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// FriendshipView is a friendship expanded with both participants' public
// profiles, ready for the client.
type FriendshipView struct {
	ID        string                  `json:"id"`
	Status    domain.FriendshipStatus `json:"status"`
	Requester domain.PublicProfile    `json:"requester"`
	Recipient domain.PublicProfile    `json:"recipient"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// SendRequestResult reports the outcome of SendRequest. Created is false on
// the revive path (a declined record reset to pending) so the transport
// layer can answer 200 instead of 201.
type SendRequestResult struct {
	Friendship *domain.Friendship
	Created    bool
}

// FriendList partitions a user's friendships into the three disjoint sets
// the client renders.
type FriendList struct {
	Friends          []FriendshipView `json:"friends"`
	IncomingRequests []FriendshipView `json:"incomingRequests"`
	SentRequests     []FriendshipView `json:"sentRequests"`
}

// FriendService implements the friendship state machine.
type FriendService interface {
	Search(ctx context.Context, userID, query string) ([]domain.PublicProfile, error)
	SendRequest(ctx context.Context, requesterID, recipientID string) (*SendRequestResult, error)
	Respond(ctx context.Context, userID, friendshipID string, status domain.FriendshipStatus) (*domain.Friendship, error)
	List(ctx context.Context, userID string) (*FriendList, error)
	Remove(ctx context.Context, userID, friendshipID string) error
}
