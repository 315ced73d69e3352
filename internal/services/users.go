package services

import (
	"context"
	"time"

	"github.com/maxaizer/gig-market/internal/domain/models"
)

type userRepository interface {
	Add(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserService struct {
	users userRepository
}

func NewUserService(users userRepository) *UserService {
	return &UserService{users: users}
}

// Register stores the profile; a duplicate email surfaces as
// models.ErrDuplicateEmail regardless of how close the two inserts ran.
func (s *UserService) Register(ctx context.Context, user models.User) error {
	user.CreatedAt = time.Now().UTC()
	return s.users.Add(ctx, &user)
}

// Lookup returns nil without an error when no user has the email;
// absence is an expected outcome here, not a failure.
func (s *UserService) Lookup(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}
