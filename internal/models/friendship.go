package models

import "github.com/puscasale/MAP-SocialNetwork/internal/apperror"

// FriendshipStatus defines the state of a friendship request.
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusApproved FriendshipStatus = "approved"
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipStatusPending, FriendshipStatusApproved, FriendshipStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transition.
func (s FriendshipStatus) Terminal() bool {
	return s == FriendshipStatusApproved || s == FriendshipStatusRejected
}

// Friendship represents the relationship between two users, keyed by the
// unordered pair of their IDs. The stored order is meaningful only for the
// request workflow: RequesterID sent the request, RecipientID decides on
// it. The symmetric friendship relation ignores the order, so lookups must
// match either orientation (see SamePair).
type Friendship struct {
	BaseModel
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"requesterId"`
	RecipientID uint             `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"recipientId"`
	Status      FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// TableName specifies the table name for the Friendship model.
func (Friendship) TableName() string {
	return "friendships"
}

// Validate checks the pair invariants: both endpoints set and distinct.
func (f *Friendship) Validate() error {
	if f.RequesterID == 0 || f.RecipientID == 0 {
		return apperror.ValidationFailed("userId", "both user ids must be set")
	}
	if f.RequesterID == f.RecipientID {
		return apperror.ValidationFailed("userId", "a user cannot befriend themselves")
	}
	if !f.Status.Valid() {
		return apperror.ValidationFailed("status", "unknown friendship status")
	}
	return nil
}

// Involves reports whether the friendship has userID as either endpoint.
func (f *Friendship) Involves(userID uint) bool {
	return f.RequesterID == userID || f.RecipientID == userID
}

// OtherUser returns the endpoint that is not userID. The caller must have
// checked Involves first; OtherUser returns 0 for a stranger.
func (f *Friendship) OtherUser(userID uint) uint {
	switch userID {
	case f.RequesterID:
		return f.RecipientID
	case f.RecipientID:
		return f.RequesterID
	}
	return 0
}

// SamePair reports whether the friendship connects the unordered pair
// {a, b}, regardless of which side sent the request.
func (f *Friendship) SamePair(a, b uint) bool {
	return (f.RequesterID == a && f.RecipientID == b) ||
		(f.RequesterID == b && f.RecipientID == a)
}
