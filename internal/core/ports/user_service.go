package ports

import (
	"context"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to UserService.
// Nil fields were absent from the request body.
type RegisterInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService exposes registration and read-back of user views.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.UserView, error)
	User(ctx context.Context, id int64) (*domain.UserView, error)
	Users(ctx context.Context, limit, offset int) ([]domain.UserView, error)
}

// PasswordHasher produces and verifies one-way salted digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// UserViewCache stores projected user views. Get reports a miss with
// (nil, false, nil).
type UserViewCache interface {
	Get(ctx context.Context, id int64) (*domain.UserView, bool, error)
	Set(ctx context.Context, view domain.UserView) error
}
