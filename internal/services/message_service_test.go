package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
)

func TestSendMessageConversationOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	_, err := svc.SendMessage(ctx, ana.ID, ion.ID, "hi")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, ion.ID, ana.ID, "hello")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, ana.ID, ion.ID, "how are you")
	require.NoError(t, err)

	// The conversation is the same regardless of which side asks.
	for _, pair := range [][2]uint{{ana.ID, ion.ID}, {ion.ID, ana.ID}} {
		messages, err := svc.GetMessagesBetween(ctx, pair[0], pair[1])
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "hi", messages[0].Body)
		assert.Equal(t, "hello", messages[1].Body)
		assert.Equal(t, "how are you", messages[2].Body)
	}
}

func TestSendMessageMaintainsReplyChain(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	first, err := svc.SendMessage(ctx, ana.ID, ion.ID, "hi")
	require.NoError(t, err)

	messages, err := svc.GetMessagesBetween(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Nil(t, messages[0].ReplyToID, "a lone message has no reply pointer")

	second, err := svc.SendMessage(ctx, ion.ID, ana.ID, "hello")
	require.NoError(t, err)

	// The pointer runs forward: the previous message now references the
	// newest one, which itself stays unlinked.
	messages, err = svc.GetMessagesBetween(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.NotNil(t, messages[0].ReplyToID)
	assert.Equal(t, second.ID, *messages[0].ReplyToID)
	assert.Nil(t, messages[1].ReplyToID)

	third, err := svc.SendMessage(ctx, ana.ID, ion.ID, "how are you")
	require.NoError(t, err)

	messages, err = svc.GetMessagesBetween(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.NotNil(t, messages[0].ReplyToID)
	assert.Equal(t, second.ID, *messages[0].ReplyToID)
	require.NotNil(t, messages[1].ReplyToID)
	assert.Equal(t, third.ID, *messages[1].ReplyToID)
	assert.Nil(t, messages[2].ReplyToID)
	assert.Equal(t, first.ID, messages[0].ID)
}

func TestSendMessageValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	_, err := svc.SendMessage(ctx, ana.ID, ion.ID, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.SendMessage(ctx, ana.ID, 999, "hi")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.SendMessage(ctx, 999, ion.ID, "hi")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSendMessageDoesNotRequireFriendship(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")

	msg, err := svc.SendMessage(ctx, ana.ID, ion.ID, "hi stranger")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.SentAt.IsZero())
}

func TestConversationsAreIsolatedPerPair(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	ana := addUser(t, svc, "Ana", "Pop", "ana@example.com")
	ion := addUser(t, svc, "Ion", "Dan", "ion@example.com")
	eva := addUser(t, svc, "Eva", "Lee", "eva@example.com")

	_, err := svc.SendMessage(ctx, ana.ID, ion.ID, "for ion")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, ana.ID, eva.ID, "for eva")
	require.NoError(t, err)

	messages, err := svc.GetMessagesBetween(ctx, ana.ID, ion.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "for ion", messages[0].Body)
}
