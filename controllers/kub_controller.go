package controllers

import (
	"context"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
)

type KubManager interface {
	Create(ctx context.Context, p services.Principal, in services.KubInput) (*models.Kub, error)
	Update(ctx context.Context, p services.Principal, id uint, in services.KubInput) (*models.Kub, error)
	Get(ctx context.Context, p services.Principal, id uint) (*models.Kub, error)
	List(ctx context.Context, p services.Principal) ([]models.Kub, error)
}

type KubController struct {
	kubs KubManager
}

func NewKubController(kubs KubManager) *KubController {
	return &KubController{kubs: kubs}
}

func (c *KubController) List(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	rows, err := c.kubs.List(ctx.UserContext(), p)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "KUB found", rows)
}

func (c *KubController) Get(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.UintParam(ctx, "id")
	if err != nil {
		return err
	}
	kub, err := c.kubs.Get(ctx.UserContext(), p, id)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "KUB found", kub)
}

func (c *KubController) Create(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	var input services.KubInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	kub, err := c.kubs.Create(ctx.UserContext(), p, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusCreated, section(p, "kub"), "Data KUB berhasil disimpan", kub)
}

func (c *KubController) Update(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.UintParam(ctx, "id")
	if err != nil {
		return err
	}
	var input services.KubInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	kub, err := c.kubs.Update(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "kub"), "Data KUB berhasil diperbarui", kub)
}
