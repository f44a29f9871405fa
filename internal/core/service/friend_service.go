package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/habitflow/habitflow-api/internal/core/domain"
	"github.com/habitflow/habitflow-api/internal/core/ports"
)

const searchLimit = 10

var ErrEmptyQuery = errors.New("search query is required")
var ErrRecipientRequired = errors.New("recipient id is required")

// FriendService implements the friendship state machine.
type FriendService struct {
	friendships ports.FriendshipRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewFriendService(friendships ports.FriendshipRepository, users ports.UserRepository, logger zerolog.Logger) *FriendService {
	return &FriendService{friendships: friendships, users: users, logger: logger}
}

// Search finds users by display name substring, case-insensitively,
// excluding the caller. Capped at 10 results.
func (s *FriendService) Search(ctx context.Context, userID, query string) ([]domain.PublicProfile, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	return s.users.SearchByDisplayName(ctx, query, userID, searchLimit)
}

// SendRequest creates a pending friendship toward recipientID, or revives a
// previously declined one. The pair is canonicalized before the existence
// check, so SendRequest(A,B) and SendRequest(B,A) observe the same record.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, recipientID string) (*ports.SendRequestResult, error) {
	if recipientID == "" {
		return nil, ErrRecipientRequired
	}
	if recipientID == requesterID {
		return nil, domain.ErrSelfFriendship
	}

	if _, err := s.users.FindByID(ctx, recipientID); err != nil {
		return nil, err
	}

	pair := domain.CanonicalPair(requesterID, recipientID)

	existing, err := s.friendships.FindByPair(ctx, pair)
	switch {
	case err == nil:
		return s.handleExisting(ctx, existing, requesterID, recipientID)
	case errors.Is(err, domain.ErrFriendshipNotFound):
		// fall through to create
	default:
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.friendships.Create(ctx, &domain.Friendship{
		Users:       pair,
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      domain.FriendshipPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		// A concurrent send for the same pair may have won the insert; the
		// unique index reports it as a duplicate, which is a Conflict here.
		return nil, err
	}

	s.logger.Info().
		Str("requester", requesterID).
		Str("recipient", recipientID).
		Msg("friend request sent")

	return &ports.SendRequestResult{Friendship: created, Created: true}, nil
}

// handleExisting resolves SendRequest against an already-present record:
// pending and accepted are conflicts; declined is revived in the new
// direction and set back to pending.
func (s *FriendService) handleExisting(ctx context.Context, f *domain.Friendship, requesterID, recipientID string) (*ports.SendRequestResult, error) {
	if f.Status != domain.FriendshipDeclined {
		return nil, domain.ErrFriendshipExists
	}

	f.RequesterID = requesterID
	f.RecipientID = recipientID
	f.Status = domain.FriendshipPending
	f.UpdatedAt = time.Now().UTC()

	revived, err := s.friendships.Update(ctx, f)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("friendship_id", f.ID).
		Str("requester", requesterID).
		Msg("declined friendship revived")

	return &ports.SendRequestResult{Friendship: revived, Created: false}, nil
}

// Respond accepts or declines a pending request. Only the stored recipient
// may respond, and only while the request is still pending.
func (s *FriendService) Respond(ctx context.Context, userID, friendshipID string, status domain.FriendshipStatus) (*domain.Friendship, error) {
	if !status.IsResponse() {
		return nil, domain.ErrFriendshipNotPending
	}

	f, err := s.friendships.FindByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if f.RecipientID != userID {
		return nil, domain.ErrForbidden
	}
	if f.Status != domain.FriendshipPending {
		return nil, domain.ErrFriendshipNotPending
	}

	f.Status = status
	f.UpdatedAt = time.Now().UTC()

	updated, err := s.friendships.Update(ctx, f)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// List returns all friendships containing userID, each expanded with both
// participants' public profiles, partitioned into friends, incoming
// requests, and sent requests.
func (s *FriendService) List(ctx context.Context, userID string) (*ports.FriendList, error) {
	friendships, err := s.friendships.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := &ports.FriendList{
		Friends:          []ports.FriendshipView{},
		IncomingRequests: []ports.FriendshipView{},
		SentRequests:     []ports.FriendshipView{},
	}

	profiles := make(map[string]domain.PublicProfile)
	for _, f := range friendships {
		view, err := s.expand(ctx, f, profiles)
		if err != nil {
			return nil, err
		}
		switch {
		case f.Status == domain.FriendshipAccepted:
			list.Friends = append(list.Friends, view)
		case f.Status == domain.FriendshipPending && f.RecipientID == userID:
			list.IncomingRequests = append(list.IncomingRequests, view)
		case f.Status == domain.FriendshipPending && f.RequesterID == userID:
			list.SentRequests = append(list.SentRequests, view)
		}
	}
	return list, nil
}

// expand resolves requester and recipient public profiles, memoized across
// the list to avoid refetching shared participants.
func (s *FriendService) expand(ctx context.Context, f domain.Friendship, profiles map[string]domain.PublicProfile) (ports.FriendshipView, error) {
	requester, err := s.profileOf(ctx, f.RequesterID, profiles)
	if err != nil {
		return ports.FriendshipView{}, err
	}
	recipient, err := s.profileOf(ctx, f.RecipientID, profiles)
	if err != nil {
		return ports.FriendshipView{}, err
	}
	return ports.FriendshipView{
		ID:        f.ID,
		Status:    f.Status,
		Requester: requester,
		Recipient: recipient,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}, nil
}

func (s *FriendService) profileOf(ctx context.Context, userID string, profiles map[string]domain.PublicProfile) (domain.PublicProfile, error) {
	if p, ok := profiles[userID]; ok {
		return p, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Participant account gone (no cascade delete); render a husk
			// rather than failing the whole listing.
			p := domain.PublicProfile{ID: userID}
			profiles[userID] = p
			return p, nil
		}
		return domain.PublicProfile{}, err
	}
	p := user.Public()
	profiles[userID] = p
	return p, nil
}

// Remove deletes the record unconditionally — cancelling a pending request
// or unfriending an accepted one. Either participant may do it.
func (s *FriendService) Remove(ctx context.Context, userID, friendshipID string) error {
	f, err := s.friendships.FindByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if !f.Involves(userID) {
		return domain.ErrForbidden
	}
	return s.friendships.Delete(ctx, friendshipID)
}
