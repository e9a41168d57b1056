package services

import (
	"context"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
)

type UserService struct {
	repo UserStore
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{repo: repo}
}

// Get all users
func (s *UserService) GetAllUsers(ctx context.Context, p Principal) ([]models.User, error) {
	if err := p.require(roles.ManageUsers); err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx)
}

type RoleInput struct {
	Role string `json:"role" form:"role" validate:"required"`
}

// ChangeRole adalah satu-satunya jalan untuk menaikkan peran akun.
func (s *UserService) ChangeRole(ctx context.Context, p Principal, id uint, in RoleInput) (*models.User, error) {
	if err := p.require(roles.ManageUsers); err != nil {
		return nil, err
	}
	role, err := roles.Parse(in.Role)
	if err != nil {
		return nil, fieldError("role", "oneof")
	}
	if id == p.UserID {
		return nil, apperror.Wrap(apperror.ErrValidation, "tidak dapat mengubah peran akun sendiri")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRole(ctx, id, string(role), p.UserID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
