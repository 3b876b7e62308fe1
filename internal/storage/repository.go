package storage

import (
	"context"
	"errors"

	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
)

// ErrNotFound is returned by lookups that miss and by Update/Delete calls
// addressing a row that does not exist. Implementations translate their
// driver-specific miss (e.g. gorm.ErrRecordNotFound) into this error so
// the service layer stays store-agnostic.
var ErrNotFound = errors.New("storage: record not found")

// ErrDuplicate is returned by Create when the entity already exists, by
// primary key or by another unique column (user email).
var ErrDuplicate = errors.New("storage: record already exists")

// UserRepository defines the persistence port for users. GetAll and
// GetAllPaged return users in store order (ascending ID); the analytics
// tie-breaks depend on that order.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.User], error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user row. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id uint) error
}

// FriendshipRepository defines the persistence port for friendships.
// A friendship is identified by its unordered user pair: GetByPair and
// DeleteByPair match either orientation of (a, b).
type FriendshipRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	// GetByPair returns the friendship for the unordered pair {a, b},
	// or (nil, nil) when no such friendship exists.
	GetByPair(ctx context.Context, a, b uint) (*models.Friendship, error)
	GetAll(ctx context.Context) ([]models.Friendship, error)
	GetAllPaged(ctx context.Context, p pagination.Pageable) (pagination.Page[models.Friendship], error)
	// GetFriendsOfPaged returns only approved friendships involving the user.
	GetFriendsOfPaged(ctx context.Context, p pagination.Pageable, userID uint) (pagination.Page[models.Friendship], error)
	// GetPendingFor returns pending requests where the user is the recipient.
	GetPendingFor(ctx context.Context, recipientID uint) ([]models.Friendship, error)
	Update(ctx context.Context, friendship *models.Friendship) error
	// DeleteByPair removes the friendship for the unordered pair {a, b}.
	// Deleting an absent pair is a no-op.
	DeleteByPair(ctx context.Context, a, b uint) error
	// DeleteAllForUser removes every friendship involving the user.
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// MessageRepository defines the persistence port for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// GetBetween returns every message exchanged within the unordered pair
	// {a, b}, ordered by ascending SentAt with ascending ID as tie-break.
	GetBetween(ctx context.Context, a, b uint) ([]models.Message, error)
	Update(ctx context.Context, message *models.Message) error
}

// Repositories bundles the three ports so a transaction can hand the
// caller store-scoped instances.
type Repositories struct {
	Users       UserRepository
	Friendships FriendshipRepository
	Messages    MessageRepository
}

// TxManager runs a function against a transactional view of the store.
// Multi-entity writes (account removal dissolving friendships) go through
// it so they commit or roll back together.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
