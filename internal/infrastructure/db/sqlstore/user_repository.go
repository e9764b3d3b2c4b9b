package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

// userRecord is the row shape of the users table. Column order matters: when
// several NOT NULL columns are missing the engine reports the first one.
type userRecord struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Name     *string `gorm:"type:text"`
	Email    *string `gorm:"type:text;not null;uniqueIndex:users_email_key"`
	Password *string `gorm:"type:text;not null"`
	IsAdmin  bool    `gorm:"not null;default:false"`
}

func (userRecord) TableName() string { return "users" }

func toRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
		IsAdmin:  u.IsAdmin,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		IsAdmin:      r.IsAdmin,
	}
}

// UserRepository stores users in a relational database through GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user inside a transaction and returns the stored row with
// its generated id. Constraint rejections come back as
// *domain.ConstraintViolation; nothing is written on failure.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	rec := toRecord(user)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	if err != nil {
		if violation := classify(err); violation != nil {
			return nil, violation
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return rec.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns users ordered by id.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(recs))
	for i := range recs {
		users = append(users, *recs[i].toDomain())
	}
	return users, nil
}

// CountByEmail reports how many rows carry email.
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
