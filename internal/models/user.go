package models

import "github.com/puscasale/MAP-SocialNetwork/internal/apperror"

// User represents an account in the network.
//
// Password is stored and compared as a plain string; this mirrors the
// legacy data and is a known open issue, not a feature.
type User struct {
	BaseModel
	FirstName string `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(100);not null" json:"lastName"`
	Email     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Validate checks the field invariants: every attribute must be non-empty.
func (u *User) Validate() error {
	if u.FirstName == "" {
		return apperror.ValidationFailed("firstName", "first name must not be empty")
	}
	if u.LastName == "" {
		return apperror.ValidationFailed("lastName", "last name must not be empty")
	}
	if u.Email == "" {
		return apperror.ValidationFailed("email", "email must not be empty")
	}
	if u.Password == "" {
		return apperror.ValidationFailed("password", "password must not be empty")
	}
	return nil
}

// UserBasicInfo holds minimal public information about a user, for
// listings where the password column must never travel.
type UserBasicInfo struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// BasicInfo projects the user onto its public fields.
func (u *User) BasicInfo() *UserBasicInfo {
	return &UserBasicInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
