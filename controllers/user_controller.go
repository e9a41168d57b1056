package controllers

import (
	"context"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
)

type UserManager interface {
	GetAllUsers(ctx context.Context, p services.Principal) ([]models.User, error)
	ChangeRole(ctx context.Context, p services.Principal, id uint, in services.RoleInput) (*models.User, error)
}

type UserController struct {
	users UserManager
}

func NewUserController(users UserManager) *UserController {
	return &UserController{users: users}
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	users, err := c.users.GetAllUsers(ctx.UserContext(), p)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "Users found", users)
}

func (c *UserController) ChangeRole(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.UintParam(ctx, "id")
	if err != nil {
		return err
	}
	var input services.RoleInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}

	user, err := c.users.ChangeRole(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "users"), "Peran pengguna berhasil diubah", user)
}
