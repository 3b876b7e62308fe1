package models

import (
	"time"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
)

// Message represents a direct message between two users. Messages are
// append-only: the exposed surface offers no edit or delete.
//
// ReplyToID carries the legacy reply-chain convention: after a new message
// is inserted, the pointer of the previous message between the pair is set
// to the new one. The pointer therefore runs forward in time. Kept for
// round-trip fidelity with existing data.
type Message struct {
	BaseModel
	SenderID    uint      `gorm:"index;not null" json:"senderId"`
	RecipientID uint      `gorm:"index;not null" json:"recipientId"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	SentAt      time.Time `gorm:"not null;index" json:"sentAt"`
	ReplyToID   *uint     `gorm:"index" json:"replyToId,omitempty"`
}

// TableName specifies the table name for the Message model.
func (Message) TableName() string {
	return "messages"
}

// Validate checks that the message has both endpoints and a body.
func (m *Message) Validate() error {
	if m.SenderID == 0 {
		return apperror.ValidationFailed("senderId", "sender must be set")
	}
	if m.RecipientID == 0 {
		return apperror.ValidationFailed("recipientId", "recipient must be set")
	}
	if m.Body == "" {
		return apperror.ValidationFailed("body", "message body must not be empty")
	}
	return nil
}

// Between reports whether the message was exchanged within the unordered
// pair {a, b}.
func (m *Message) Between(a, b uint) bool {
	return (m.SenderID == a && m.RecipientID == b) ||
		(m.SenderID == b && m.RecipientID == a)
}
