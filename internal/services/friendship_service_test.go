package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
	"github.com/puscasale/MAP-SocialNetwork/internal/storage"
)

func TestCreateFriendshipRequestStartsPending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	friendship, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusPending, friendship.Status)
	assert.Equal(t, ana.ID, friendship.RequesterID)
	assert.Equal(t, ion.ID, friendship.RecipientID)

	// Pending requests convey no friendship yet.
	friends, err := svc.GetFriends(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestCreateFriendshipRequestRejectsSelf(t *testing.T) {
	svc := newTestService(t)
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")

	_, err := svc.CreateFriendshipRequest(context.Background(), ana.ID, ana.ID)

	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateFriendshipRequestUnknownUser(t *testing.T) {
	svc := newTestService(t)
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")

	_, err := svc.CreateFriendshipRequest(context.Background(), ana.ID, 999)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateFriendshipRequestDuplicatePair(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	_, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)

	// Same pair again, in either orientation.
	_, err = svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = svc.CreateFriendshipRequest(ctx, ion.ID, ana.ID)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestManageFriendRequestApprove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	_, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)

	friendship, err := svc.ManageFriendRequest(ctx, ion.ID, ana.ID, models.FriendshipStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusApproved, friendship.Status)

	// Friendship is symmetric.
	friends, err := svc.GetFriends(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, ion.ID, friends[0].ID)

	friends, err = svc.GetFriends(ctx, ion.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, ana.ID, friends[0].ID)
}

func TestManageFriendRequestReject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	_, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)

	friendship, err := svc.ManageFriendRequest(ctx, ana.ID, ion.ID, models.FriendshipStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusRejected, friendship.Status)

	friends, err := svc.GetFriends(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestManageFriendRequestDecidedIsFinal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	_, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	_, err = svc.ManageFriendRequest(ctx, ana.ID, ion.ID, models.FriendshipStatusApproved)
	require.NoError(t, err)

	_, err = svc.ManageFriendRequest(ctx, ana.ID, ion.ID, models.FriendshipStatusRejected)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	_, err = svc.ManageFriendRequest(ctx, ana.ID, ion.ID, models.FriendshipStatusApproved)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
}

func TestManageFriendRequestUnknownPair(t *testing.T) {
	svc := newTestService(t)
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	_, err := svc.ManageFriendRequest(context.Background(), ana.ID, ion.ID, models.FriendshipStatusApproved)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestManageFriendRequestRejectsBadDecision(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	_, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)

	_, err = svc.ManageFriendRequest(ctx, ana.ID, ion.ID, models.FriendshipStatusPending)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// The request must still be decidable.
	_, err = svc.ManageFriendRequest(ctx, ana.ID, ion.ID, models.FriendshipStatusApproved)
	assert.NoError(t, err)
}

func TestRemoveFriendship(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	befriend(t, svc, ana.ID, ion.ID)

	require.NoError(t, svc.RemoveFriendship(ctx, ion.ID, ana.ID))

	friends, err := svc.GetFriends(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// Removing an absent friendship succeeds silently.
	assert.NoError(t, svc.RemoveFriendship(ctx, ana.ID, ion.ID))
}

func TestGetPendingRequestsOnlyForRecipient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	eva := addUser(t, svc, "Eva", "Lee", "eva@example.com")
	_, err := svc.CreateFriendshipRequest(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	_, err = svc.CreateFriendshipRequest(ctx, eva.ID, ion.ID)
	require.NoError(t, err)

	pending, err := svc.GetPendingRequests(ctx, ion.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// The requester has nothing to decide.
	pending, err = svc.GetPendingRequests(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestListUserFriendsPagedCountsApprovedOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	eva := addUser(t, svc, "Eva", "Lee", "eva@example.com")
	befriend(t, svc, ana.ID, ion.ID)
	_, err := svc.CreateFriendshipRequest(ctx, eva.ID, ana.ID)
	require.NoError(t, err)

	page, err := svc.ListUserFriends(ctx, pagination.Pageable{Size: 10, Number: 0}, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ion.ID, page.Items[0].OtherUser(ana.ID))
}

func TestNewServiceRebuildsIndexFromStore(t *testing.T) {
	store := storage.NewMemoryStore()
	svc, err := NewSocialService(store.Repositories(), store)
	require.NoError(t, err)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	befriend(t, svc, ana.ID, ion.ID)

	// A second facade over the same store must see the same graph.
	reopened, err := NewSocialService(store.Repositories(), store)
	require.NoError(t, err)

	friends, err := reopened.GetFriends(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, ion.ID, friends[0].ID)
}
