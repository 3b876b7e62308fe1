package services

import (
	"context"
	"errors"

	"github.com/puscasale/MAP-SocialNetwork/internal/apperror"
	"github.com/puscasale/MAP-SocialNetwork/internal/models"
	"github.com/puscasale/MAP-SocialNetwork/internal/pagination"
	"github.com/puscasale/MAP-SocialNetwork/internal/storage"
	"github.com/puscasale/MAP-SocialNetwork/pkg/logger"
)

// AddUser signs up a new account. All four fields must be non-empty and
// the email must not collide with an existing user. The new user is not
// logged in.
func (s *socialService) AddUser(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.DuplicateEmail(email)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, apperror.Persistence("checking email uniqueness", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, apperror.DuplicateEmail(email)
		}
		return nil, apperror.Persistence("creating user", err)
	}
	logger.Info("user created", "userId", user.ID, "email", user.Email)
	return user, nil
}

// Login returns the user whose email and password both match. Passwords
// are compared as exact cleartext strings, matching the stored data; this
// is a known open issue of the contract.
func (s *socialService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, apperror.Persistence("looking up user", err)
	}
	if user.Password != password {
		return nil, apperror.InvalidCredentials()
	}
	return user, nil
}

// UpdateUser persists new profile fields for an existing account. When
// the email changed, uniqueness is re-checked against the whole store.
func (s *socialService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFound("user", user.ID)
		}
		return nil, apperror.Persistence("looking up user", err)
	}

	if user.Email != existing.Email {
		_, err := s.users.GetByEmail(ctx, user.Email)
		switch {
		case err == nil:
			return nil, apperror.DuplicateEmail(user.Email)
		case !errors.Is(err, storage.ErrNotFound):
			return nil, apperror.Persistence("checking email uniqueness", err)
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFound("user", user.ID)
		}
		return nil, apperror.Persistence("updating user", err)
	}
	return user, nil
}

// RemoveUser deletes the account and dissolves every friendship the user
// participates in, in one transaction. The adjacency index is touched only
// after the store has committed, so a failure changes nothing observable.
func (s *socialService) RemoveUser(ctx context.Context, id uint) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperror.NotFound("user", id)
		}
		return apperror.Persistence("looking up user", err)
	}

	err := s.tx.WithinTx(ctx, func(r storage.Repositories) error {
		if err := r.Friendships.DeleteAllForUser(ctx, id); err != nil {
			return err
		}
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return apperror.Persistence("removing user", err)
	}

	s.index.RemoveUser(id)
	logger.Info("user removed", "userId", id)
	return nil
}

// FindUserByID fetches a single account.
func (s *socialService) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, apperror.Persistence("looking up user", err)
	}
	return user, nil
}

// FindUserByName scans for the first user matching both names exactly.
func (s *socialService) FindUserByName(ctx context.Context, firstName, lastName string) (*models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, apperror.Persistence("loading users", err)
	}
	for i := range users {
		if users[i].FirstName == firstName && users[i].LastName == lastName {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindUserByEmail returns the user with the given email, or nil.
func (s *socialService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence("looking up user", err)
	}
	return user, nil
}

// ListUsers returns one page of users in store order.
func (s *socialService) ListUsers(ctx context.Context, p pagination.Pageable) (pagination.Page[models.User], error) {
	page, err := s.users.GetAllPaged(ctx, p)
	if err != nil {
		return pagination.Page[models.User]{}, apperror.Persistence("listing users", err)
	}
	return page, nil
}
