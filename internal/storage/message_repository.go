package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/puscasale/MAP-SocialNetwork/internal/models"
)

// gormMessageRepository implements MessageRepository using GORM.
type gormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based MessageRepository.
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormMessageRepository) GetBetween(ctx context.Context, a, b uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("sent_at asc, id asc").
		Find(&messages).Error
	return messages, err
}

func (r *gormMessageRepository) Update(ctx context.Context, message *models.Message) error {
	if message.ID == 0 {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", message.ID).
		Updates(map[string]any{
			"body":        message.Body,
			"reply_to_id": message.ReplyToID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
