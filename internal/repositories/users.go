package repositories

import (
	"context"
	"strings"

	"github.com/maxaizer/gig-market/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Add inserts the user, relying on the primary-key constraint so that
// two concurrent registrations with the same email leave exactly one row.
func (repo *Users) Add(ctx context.Context, user *models.User) error {
	err := repo.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.ErrDuplicateEmail
		}
		return errors.Wrap(err, "failed to add user")
	}
	return nil
}

func (repo *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {

	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get user by email")
	}
	return &user, nil
}
