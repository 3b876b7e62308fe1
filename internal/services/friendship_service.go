package services

import (
	"context"
	"errors"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
	"github.com/puscasale/MAP-SocialNetwork/internal/storage"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"
)

// CreateFriendshipRequest opens a pending request from one user to
// another. Self-requests are rejected, as is any pair that already has a
// friendship entity in whatever status; re-requesting after a rejection
// requires deleting the old entity first.
func (s *socialService) CreateFriendshipRequest(ctx context.Context, fromID, toID uint) (*models.Friendship, error) {
	friendship := &models.Friendship{
		RequesterID: fromID,
		RecipientID: toID,
		Status:      models.FriendshipStatusPending,
	}
	if err := friendship.Validate(); err != nil {
		return nil, err
	}

	for _, id := range []uint{fromID, toID} {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, apperror.NotFound("user", id)
			}
			return nil, apperror.Persistence("looking up user", err)
		}
	}

	existing, err := s.friendships.GetByPair(ctx, fromID, toID)
	if err != nil {
		return nil, apperror.Persistence("looking up friendship", err)
	}
	if existing != nil {
		return nil, apperror.ValidationFailed("friendship", "a friendship already exists between these users")
	}

	if err := s.friendships.Create(ctx, friendship); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, apperror.ValidationFailed("friendship", "a friendship already exists between these users")
		}
		return nil, apperror.Persistence("creating friendship request", err)
	}
	logger.Info("friendship request created", "from", fromID, "to", toID)
	return friendship, nil
}

// ManageFriendRequest decides a pending request between the pair {a, b}.
// The only legal transitions are pending->approved and pending->rejected;
// anything else fails without touching the store. An approval is the one
// moment a pair enters the adjacency index.
func (s *socialService) ManageFriendRequest(ctx context.Context, a, b uint, decision models.FriendshipStatus) (*models.Friendship, error) {
	if decision != models.FriendshipStatusApproved && decision != models.FriendshipStatusRejected {
		return nil, apperror.ValidationFailed("decision", "decision must be approved or rejected")
	}

	friendship, err := s.friendships.GetByPair(ctx, a, b)
	if err != nil {
		return nil, apperror.Persistence("looking up friendship", err)
	}
	if friendship == nil {
		return nil, apperror.NotFound("friendship", [2]uint{a, b})
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, apperror.InvalidTransition(string(friendship.Status), string(decision))
	}

	friendship.Status = decision
	if err := s.friendships.Update(ctx, friendship); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFound("friendship", [2]uint{a, b})
		}
		return nil, apperror.Persistence("updating friendship", err)
	}

	if decision == models.FriendshipStatusApproved {
		s.index.Add(friendship.RequesterID, friendship.RecipientID)
	}
	logger.Info("friendship request decided",
		"requester", friendship.RequesterID, "recipient", friendship.RecipientID, "decision", decision)
	return friendship, nil
}

// RemoveFriendship un-friends the pair {a, b}. It succeeds silently when
// the pair is already not friends.
func (s *socialService) RemoveFriendship(ctx context.Context, a, b uint) error {
	existing, err := s.friendships.GetByPair(ctx, a, b)
	if err != nil {
		return apperror.Persistence("looking up friendship", err)
	}
	if existing == nil {
		return nil
	}
	if err := s.friendships.DeleteByPair(ctx, a, b); err != nil {
		return apperror.Persistence("deleting friendship", err)
	}
	s.index.Remove(a, b)
	logger.Info("friendship removed", "a", a, "b", b)
	return nil
}

// GetFriends returns every user the given user has an approved friendship
// with, derived from the adjacency index (the single source of "who is
// friends with whom").
func (s *socialService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	friends := []models.User{}
	for _, friendID := range s.index.Friends(userID) {
		user, err := s.users.GetByID(ctx, friendID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, apperror.Persistence("looking up friend", err)
		}
		friends = append(friends, *user)
	}
	return friends, nil
}

// GetPendingRequests returns the requests awaiting the user's decision:
// friendships where the user is the recipient and the status is pending.
func (s *socialService) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	pending, err := s.friendships.GetPendingFor(ctx, userID)
	if err != nil {
		return nil, apperror.Persistence("listing pending requests", err)
	}
	return pending, nil
}

// ListFriendships returns one page of all friendship entities.
func (s *socialService) ListFriendships(ctx context.Context, p pagination.Pageable) (pagination.Page[models.Friendship], error) {
	page, err := s.friendships.GetAllPaged(ctx, p)
	if err != nil {
		return pagination.Page[models.Friendship]{}, apperror.Persistence("listing friendships", err)
	}
	return page, nil
}

// ListUserFriends returns one page of the user's approved friendships.
func (s *socialService) ListUserFriends(ctx context.Context, p pagination.Pageable, userID uint) (pagination.Page[models.Friendship], error) {
	page, err := s.friendships.GetFriendsOfPaged(ctx, p, userID)
	if err != nil {
		return pagination.Page[models.Friendship]{}, apperror.Persistence("listing user friends", err)
	}
	return page, nil
}
