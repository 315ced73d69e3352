package models

import (
	"errors"
	"time"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")

// User is an identity record only: jobs reference it by email,
// there is no password and no session.
type User struct {
	Email     string    `gorm:"primaryKey" json:"email"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}
