package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// User models a registered account.
//
// Name, Email and PasswordHash are pointers so that an absent value reaches
// storage as NULL and the engine's NOT NULL constraint decides the outcome.
type User struct {
	ID           int64
	Name         *string
	Email        *string
	PasswordHash *string
	IsAdmin      bool
}

// HasPassword reports whether a digest has been assigned.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
