package controllers

import (
	"context"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardBuilder interface {
	Build(ctx context.Context, p services.Principal) (*services.Dashboard, error)
}

type DashboardController struct {
	dashboards DashboardBuilder
}

func NewDashboardController(dashboards DashboardBuilder) *DashboardController {
	return &DashboardController{dashboards: dashboards}
}

// GetDashboard tidak pernah gagal hanya karena sebagian query gagal; query
// yang gagal bernilai nol dan tercatat di warnings.
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}

	d, err := c.dashboards.Build(ctx.UserContext(), p)
	if err != nil {
		return err
	}

	message := "Dashboard berhasil dimuat"
	if len(d.Warnings) > 0 {
		message = "Sebagian data dashboard gagal dimuat"
	}
	return helpers.OK(ctx, message, d)
}
