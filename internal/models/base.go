package models

import (
	"strconv"
	"time"
)

// BaseModel defines the common fields for all persisted entities.
// IDs are assigned by the store on insert. Deletes are hard deletes:
// removing an account must leave no row behind (and free its email).
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IDString returns the ID as a string.
func (b *BaseModel) IDString() string {
	return strconv.FormatUint(uint64(b.ID), 10)
}
