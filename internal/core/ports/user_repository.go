package ports

import (
	"context"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

// UserRepository persists users.
//
// Create stages and commits the user in a single transaction. Writes rejected
// by a NOT NULL or UNIQUE column rule are returned as *domain.ConstraintViolation;
// every other failure is returned wrapped and unclassified.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}
