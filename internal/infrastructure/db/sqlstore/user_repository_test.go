package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestUserRepository_CreateAssignsID(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.User{
		Name:         strPtr("Ann"),
		Email:        strPtr("ann@example.com"),
		PasswordHash: strPtr("$2a$hash"),
	})
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.False(t, first.IsAdmin)

	second, err := repo.Create(ctx, &domain.User{
		Email:        strPtr("bob@example.com"),
		PasswordHash: strPtr("$2a$hash"),
	})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)
	require.Nil(t, second.Name)

	stored, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	require.Nil(t, stored.Name)
	require.Equal(t, "bob@example.com", *stored.Email)
	require.Equal(t, "$2a$hash", *stored.PasswordHash)
}

func TestUserRepository_CreateMissingEmail(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), &domain.User{
		Name:         strPtr("Ann"),
		PasswordHash: strPtr("$2a$hash"),
	})

	var violation *domain.ConstraintViolation
	require.True(t, errors.As(err, &violation), "got %v", err)
	require.Equal(t, domain.ViolationNotNull, violation.Kind)
	require.Equal(t, "email", violation.Field)

	users, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestUserRepository_CreateMissingPassword(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), &domain.User{
		Email: strPtr("ann@example.com"),
	})

	var violation *domain.ConstraintViolation
	require.True(t, errors.As(err, &violation), "got %v", err)
	require.Equal(t, domain.ViolationNotNull, violation.Kind)
	require.Equal(t, "password", violation.Field)
}

func TestUserRepository_CreateMissingEmailReportedBeforePassword(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), &domain.User{})

	var violation *domain.ConstraintViolation
	require.True(t, errors.As(err, &violation), "got %v", err)
	require.Equal(t, "email", violation.Field)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{
		Email:        strPtr("dup@example.com"),
		PasswordHash: strPtr("$2a$one"),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{
		Name:         strPtr("Other"),
		Email:        strPtr("dup@example.com"),
		PasswordHash: strPtr("$2a$two"),
	})

	var violation *domain.ConstraintViolation
	require.True(t, errors.As(err, &violation), "got %v", err)
	require.Equal(t, domain.ViolationUnique, violation.Kind)
	require.Equal(t, "email", violation.Field)

	n, err := repo.CountByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestUserRepository_EmailIsCaseSensitive(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Email: strPtr("Case@example.com"), PasswordHash: strPtr("h")})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Email: strPtr("case@example.com"), PasswordHash: strPtr("h")})
	require.NoError(t, err)
}

func TestUserRepository_FindByIDNotFound(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByID(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListPaginates(t *testing.T) {
	db, _ := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &domain.User{
			Email:        strPtr(fmt.Sprintf("u%d@example.com", i)),
			PasswordHash: strPtr("h"),
		})
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "u1@example.com", *page[0].Email)
	require.Equal(t, "u2@example.com", *page[1].Email)

	tail, err := repo.List(ctx, 10, 4)
	require.NoError(t, err)
	require.Len(t, tail, 1)

	empty, err := repo.List(ctx, 10, 50)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
