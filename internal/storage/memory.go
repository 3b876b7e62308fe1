package storage

import (
	"context"
	"sort"
	"time"

	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
)

// MemoryStore is a map-backed implementation of all three persistence
// ports. It serves two roles: the test fixture for the service layer, and
// the "memory" database type for running without external storage.
//
// Like the service layer itself it assumes a single caller thread and is
// not synchronised. The ports share clashing method names, so the store
// exposes one small view per entity.
type MemoryStore struct {
	users       map[uint]*models.User
	userOrder   []uint
	friendships []*models.Friendship
	messages    []*models.Message

	nextUserID       uint
	nextFriendshipID uint
	nextMessageID    uint
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:            make(map[uint]*models.User),
		nextUserID:       1,
		nextFriendshipID: 1,
		nextMessageID:    1,
	}
}

// Users returns the store's UserRepository view.
func (s *MemoryStore) Users() UserRepository { return &memoryUserRepo{s} }

// Friendships returns the store's FriendshipRepository view.
func (s *MemoryStore) Friendships() FriendshipRepository { return &memoryFriendshipRepo{s} }

// Messages returns the store's MessageRepository view.
func (s *MemoryStore) Messages() MessageRepository { return &memoryMessageRepo{s} }

// Repositories exposes the store through the port bundle.
func (s *MemoryStore) Repositories() Repositories {
	return Repositories{Users: s.Users(), Friendships: s.Friendships(), Messages: s.Messages()}
}

// WithinTx satisfies TxManager. The store has no rollback; it relies on
// the validation-before-write discipline of the service layer, which only
// reaches the store once an operation can no longer fail its checks.
func (s *MemoryStore) WithinTx(_ context.Context, fn func(r Repositories) error) error {
	return fn(s.Repositories())
}

// --- UserRepository ---

type memoryUserRepo struct {
	s *MemoryStore
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	s := r.s
	if user.ID != 0 {
		if _, exists := s.users[user.ID]; exists {
			return ErrDuplicate
		}
	}
	if user.Email != "" {
		for _, u := range s.users {
			if u.Email == user.Email {
				return ErrDuplicate
			}
		}
	}
	if user.ID == 0 {
		user.ID = s.nextUserID
	}
	if user.ID >= s.nextUserID {
		s.nextUserID = user.ID + 1
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	s.users[user.ID] = &stored
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, id := range r.s.userOrder {
		if u, ok := r.s.users[id]; ok && u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.s.users))
	for _, id := range r.s.userOrder {
		if u, ok := r.s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.User], error) {
	all, _ := r.GetAll(ctx)
	return pagination.Paginate(all, p), nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *models.User) error {
	stored, ok := r.s.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.Password = user.Password
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uint) error {
	s := r.s
	if _, ok := s.users[id]; !ok {
		return nil
	}
	delete(s.users, id)
	for i, uid := range s.userOrder {
		if uid == id {
			s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
			break
		}
	}
	return nil
}

// --- FriendshipRepository ---

type memoryFriendshipRepo struct {
	s *MemoryStore
}

func (r *memoryFriendshipRepo) Create(_ context.Context, friendship *models.Friendship) error {
	s := r.s
	for _, f := range s.friendships {
		if f.SamePair(friendship.RequesterID, friendship.RecipientID) {
			return ErrDuplicate
		}
	}
	if friendship.ID == 0 {
		friendship.ID = s.nextFriendshipID
	}
	if friendship.ID >= s.nextFriendshipID {
		s.nextFriendshipID = friendship.ID + 1
	}
	if friendship.CreatedAt.IsZero() {
		friendship.CreatedAt = time.Now()
	}
	friendship.UpdatedAt = friendship.CreatedAt
	stored := *friendship
	s.friendships = append(s.friendships, &stored)
	return nil
}

func (r *memoryFriendshipRepo) GetByPair(_ context.Context, a, b uint) (*models.Friendship, error) {
	for _, f := range r.s.friendships {
		if f.SamePair(a, b) {
			out := *f
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryFriendshipRepo) GetAll(_ context.Context) ([]models.Friendship, error) {
	out := make([]models.Friendship, len(r.s.friendships))
	for i, f := range r.s.friendships {
		out[i] = *f
	}
	return out, nil
}

func (r *memoryFriendshipRepo) GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.Friendship], error) {
	all, _ := r.GetAll(ctx)
	return pagination.Paginate(all, p), nil
}

func (r *memoryFriendshipRepo) GetFriendsOfPaged(_ context.Context, p pagination.Pageable, userID uint) (pagination.Page[models.Friendship], error) {
	matching := []models.Friendship{}
	for _, f := range r.s.friendships {
		if f.Involves(userID) && f.Status == models.FriendshipStatusApproved {
			matching = append(matching, *f)
		}
	}
	return pagination.Paginate(matching, p), nil
}

func (r *memoryFriendshipRepo) GetPendingFor(_ context.Context, recipientID uint) ([]models.Friendship, error) {
	out := []models.Friendship{}
	for _, f := range r.s.friendships {
		if f.RecipientID == recipientID && f.Status == models.FriendshipStatusPending {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memoryFriendshipRepo) Update(_ context.Context, friendship *models.Friendship) error {
	for _, f := range r.s.friendships {
		if f.ID == friendship.ID {
			f.Status = friendship.Status
			f.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryFriendshipRepo) DeleteByPair(_ context.Context, a, b uint) error {
	s := r.s
	for i, f := range s.friendships {
		if f.SamePair(a, b) {
			s.friendships = append(s.friendships[:i], s.friendships[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryFriendshipRepo) DeleteAllForUser(_ context.Context, userID uint) error {
	s := r.s
	kept := s.friendships[:0]
	for _, f := range s.friendships {
		if !f.Involves(userID) {
			kept = append(kept, f)
		}
	}
	s.friendships = kept
	return nil
}

// --- MessageRepository ---

type memoryMessageRepo struct {
	s *MemoryStore
}

func (r *memoryMessageRepo) Create(_ context.Context, message *models.Message) error {
	s := r.s
	if message.ID == 0 {
		message.ID = s.nextMessageID
	}
	if message.ID >= s.nextMessageID {
		s.nextMessageID = message.ID + 1
	}
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now
	if message.SentAt.IsZero() {
		message.SentAt = now
	}
	stored := *message
	s.messages = append(s.messages, &stored)
	return nil
}

func (r *memoryMessageRepo) GetBetween(_ context.Context, a, b uint) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range r.s.messages {
		if m.Between(a, b) {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}

func (r *memoryMessageRepo) Update(_ context.Context, message *models.Message) error {
	for _, m := range r.s.messages {
		if m.ID == message.ID {
			m.Body = message.Body
			m.ReplyToID = message.ReplyToID
			m.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}
