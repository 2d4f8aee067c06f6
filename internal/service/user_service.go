package service

import (
	"context"
	"errors"

	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles account management operations
type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID retrieves a user account
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// GetRole returns a user's role for authorization checks
func (s *UserService) GetRole(ctx context.Context, userID int) (string, error) {
	return s.userRepo.GetRole(ctx, userID)
}

// Update modifies a user's account details
func (s *UserService) Update(ctx context.Context, id int, update *model.UserUpdate) (*model.User, error) {
	if update.Email != nil {
		existing, err := s.userRepo.GetByEmail(ctx, *update.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, errors.New("email already in use")
		}
	}

	updated, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.New("user not found")
	}

	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword verifies the current password and sets a new one
func (s *UserService) ChangePassword(ctx context.Context, id int, change *model.UserChangePassword) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(change.CurrentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(change.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return err
	}

	return s.userRepo.UpdatePassword(ctx, id, string(hashedPassword))
}

// Deactivate disables a user account
func (s *UserService) Deactivate(ctx context.Context, id int) error {
	deactivated, err := s.userRepo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !deactivated {
		return errors.New("user not found")
	}

	s.logger.Info("user deactivated", zap.Int("userID", id))
	return nil
}

// List retrieves a page of user accounts for administration
func (s *UserService) List(ctx context.Context, page, limit int) ([]model.User, int, error) {
	offset := (page - 1) * limit

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
