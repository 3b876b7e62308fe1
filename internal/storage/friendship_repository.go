package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
)

// gormFriendshipRepository implements FriendshipRepository using GORM.
// The pair is stored as (requester, recipient); every unordered lookup
// matches both orientations.
type gormFriendshipRepository struct {
	db *gorm.DB
}

// NewGormFriendshipRepository creates a new GORM-based FriendshipRepository.
func NewGormFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &gormFriendshipRepository{db: db}
}

func (r *gormFriendshipRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	existing, err := r.GetByPair(ctx, friendship.RequesterID, friendship.RecipientID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicate
	}
	err = r.db.WithContext(ctx).Create(friendship).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *gormFriendshipRepository) GetByPair(ctx context.Context, a, b uint) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)", a, b, b, a).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *gormFriendshipRepository) GetAll(ctx context.Context) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).Order("id asc").Find(&friendships).Error
	return friendships, err
}

func (r *gormFriendshipRepository) GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.Friendship], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Friendship{}).Count(&total).Error; err != nil {
		return pagination.Page[models.Friendship]{}, err
	}
	friendships := []models.Friendship{}
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&friendships).Error
	if err != nil {
		return pagination.Page[models.Friendship]{}, err
	}
	return pagination.Page[models.Friendship]{Items: friendships, Total: int(total)}, nil
}

func (r *gormFriendshipRepository) GetFriendsOfPaged(ctx context.Context, p pagination.Pageable, userID uint) (pagination.Page[models.Friendship], error) {
	base := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, models.FriendshipStatusApproved)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return pagination.Page[models.Friendship]{}, err
	}
	friendships := []models.Friendship{}
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, models.FriendshipStatusApproved).
		Order("id asc").
		Limit(p.Size).
		Offset(p.Offset()).
		Find(&friendships).Error
	if err != nil {
		return pagination.Page[models.Friendship]{}, err
	}
	return pagination.Page[models.Friendship]{Items: friendships, Total: int(total)}, nil
}

func (r *gormFriendshipRepository) GetPendingFor(ctx context.Context, recipientID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, models.FriendshipStatusPending).
		Order("id asc").
		Find(&friendships).Error
	return friendships, err
}

func (r *gormFriendshipRepository) Update(ctx context.Context, friendship *models.Friendship) error {
	if friendship.ID == 0 {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("id = ?", friendship.ID).
		Update("status", friendship.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormFriendshipRepository) DeleteByPair(ctx context.Context, a, b uint) error {
	return r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)", a, b, b, a).
		Delete(&models.Friendship{}).Error
}

func (r *gormFriendshipRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Delete(&models.Friendship{}).Error
}
