package service

import (
	"database/sql"
	"errors"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/repository"
)

// UserService handles user-related business logic.
type UserService struct {
	userRepo repository.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every registered account. Admin only; enforced at the
// router.
func (s *UserService) ListUsers() ([]*model.User, error) {
	return s.userRepo.GetAllUsers()
}

// UpdateUserRole validates the role and calls the repository to update it.
func (s *UserService) UpdateUserRole(userID int, newRole model.Role) error {
	if newRole != model.RoleAdmin && newRole != model.RoleRegistrant && newRole != model.RoleUser {
		return common.ErrInvalidRole
	}

	if err := s.userRepo.UpdateUserRole(userID, string(newRole)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}
