package services

import (
	"context"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
	"github.com/puscasale/MAP-SocialNetwork/internal/graph"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
	"github.com/puscasale/MAP-SocialNetwork/internal/storage"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"
)

// SocialService is the facade every UI talks to: accounts, the friendship
// request workflow, direct messaging and the social-graph analytics.
//
// All operations are meant to run on one logical caller thread; the
// adjacency index the service owns is unguarded state. The store is the
// source of truth and the index is only mutated after the corresponding
// write has been committed, so a failed operation leaves no partial state.
type SocialService interface {
	// Accounts.
	AddUser(ctx context.Context, firstName, lastName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	RemoveUser(ctx context.Context, id uint) error
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	// FindUserByName and FindUserByEmail return (nil, nil) when no user
	// matches; absence is an answer here, not a failure.
	FindUserByName(ctx context.Context, firstName, lastName string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, p pagination.Pageable) (pagination.Page[models.User], error)

	// Friendships.
	CreateFriendshipRequest(ctx context.Context, fromID, toID uint) (*models.Friendship, error)
	ManageFriendRequest(ctx context.Context, a, b uint, decision models.FriendshipStatus) (*models.Friendship, error)
	RemoveFriendship(ctx context.Context, a, b uint) error
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error)
	ListFriendships(ctx context.Context, p pagination.Pageable) (pagination.Page[models.Friendship], error)
	ListUserFriends(ctx context.Context, p pagination.Pageable, userID uint) (pagination.Page[models.Friendship], error)

	// Messaging.
	SendMessage(ctx context.Context, fromID, toID uint, body string) (*models.Message, error)
	GetMessagesBetween(ctx context.Context, a, b uint) ([]models.Message, error)

	// Analytics.
	NumberOfCommunities(ctx context.Context) (int, error)
	MostSocialCommunity(ctx context.Context) ([]uint, error)
}

type socialService struct {
	users       storage.UserRepository
	friendships storage.FriendshipRepository
	messages    storage.MessageRepository
	tx          storage.TxManager
	index       *graph.Index
}

// NewSocialService wires the facade to its persistence ports and rebuilds
// the adjacency index from the friendship store.
func NewSocialService(repos storage.Repositories, tx storage.TxManager) (SocialService, error) {
	s := &socialService{
		users:       repos.Users,
		friendships: repos.Friendships,
		messages:    repos.Messages,
		tx:          tx,
		index:       graph.NewIndex(),
	}
	if err := s.rebuildIndex(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuildIndex scans the friendship store and re-derives the adjacency
// index from the approved rows.
func (s *socialService) rebuildIndex(ctx context.Context) error {
	friendships, err := s.friendships.GetAll(ctx)
	if err != nil {
		return apperror.Persistence("loading friendships", err)
	}
	s.index = graph.NewIndex()
	for _, f := range friendships {
		if f.Status == models.FriendshipStatusApproved {
			s.index.Add(f.RequesterID, f.RecipientID)
		}
	}
	logger.Debug("adjacency index rebuilt", "friendships", len(friendships))
	return nil
}

// userOrder returns all user IDs in store order. The analytics tie-breaks
// are defined in terms of this order.
func (s *socialService) userOrder(ctx context.Context) ([]uint, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, apperror.Persistence("loading users", err)
	}
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// NumberOfCommunities counts the connected components of the graph
// induced by approved friendships; isolated users count as communities of
// one.
func (s *socialService) NumberOfCommunities(ctx context.Context) (int, error) {
	order, err := s.userOrder(ctx)
	if err != nil {
		return 0, err
	}
	return s.index.Communities(order), nil
}

// MostSocialCommunity returns the longest BFS path found in any single
// community, as an ordered list of user IDs. The list is empty only when
// there are no users at all.
func (s *socialService) MostSocialCommunity(ctx context.Context) ([]uint, error) {
	order, err := s.userOrder(ctx)
	if err != nil {
		return nil, err
	}
	return s.index.LongestPath(order), nil
}
