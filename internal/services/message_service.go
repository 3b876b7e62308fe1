package services

import (
	"context"
	"errors"
	"time"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/storage"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"
)

// SendMessage appends a direct message from one user to the other with
// the current timestamp.
//
// The legacy reply chain is maintained on the way out: once more than one
// message exists between the pair, the reply pointer of the second-to-last
// message is set to the newly inserted one. The pointer therefore runs
// forward in time rather than backwards; kept as-is for round-trip
// fidelity with existing data.
func (s *socialService) SendMessage(ctx context.Context, fromID, toID uint, body string) (*models.Message, error) {
	message := &models.Message{
		SenderID:    fromID,
		RecipientID: toID,
		Body:        body,
		SentAt:      time.Now(),
	}
	if err := message.Validate(); err != nil {
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

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperror.Persistence("creating message", err)
	}

	between, err := s.messages.GetBetween(ctx, fromID, toID)
	if err != nil {
		return nil, apperror.Persistence("loading conversation", err)
	}
	if len(between) > 1 {
		previous := between[len(between)-2]
		latestID := between[len(between)-1].ID
		previous.ReplyToID = &latestID
		if err := s.messages.Update(ctx, &previous); err != nil {
			return nil, apperror.Persistence("updating reply pointer", err)
		}
	}

	logger.Debug("message sent", "from", fromID, "to", toID, "messageId", message.ID)
	return message, nil
}

// GetMessagesBetween returns the full conversation between the pair
// {a, b}, ordered by ascending timestamp with store-assigned ID as the
// tie-break.
func (s *socialService) GetMessagesBetween(ctx context.Context, a, b uint) ([]models.Message, error) {
	messages, err := s.messages.GetBetween(ctx, a, b)
	if err != nil {
		return nil, apperror.Persistence("loading conversation", err)
	}
	return messages, nil
}
