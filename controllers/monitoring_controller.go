package controllers

import (
	"context"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/gofiber/fiber/v2"
)

type MonitoringFlow interface {
	Create(ctx context.Context, p services.Principal, in services.MonitoringInput) (*models.Monitoring, error)
	Update(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.MonitoringInput) (*models.Monitoring, error)
	Verify(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.VerifyInput) (*models.Monitoring, error)
	Delete(ctx context.Context, p services.Principal, id types.SnowflakeID) error
	Get(ctx context.Context, p services.Principal, id types.SnowflakeID) (*models.Monitoring, error)
	History(ctx context.Context, p services.Principal, id types.SnowflakeID) ([]models.StatusHistory, error)
	List(ctx context.Context, p services.Principal, q services.MonitoringQuery) ([]models.Monitoring, error)
	FinalReport(ctx context.Context, p services.Principal, q services.MonitoringQuery) ([]models.Monitoring, error)
}

type MonitoringExporter interface {
	Monitoring(ctx context.Context, p services.Principal, q services.MonitoringQuery) (*services.Export, error)
}

type MonitoringController struct {
	flow   MonitoringFlow
	export MonitoringExporter
}

func NewMonitoringController(flow MonitoringFlow, export MonitoringExporter) *MonitoringController {
	return &MonitoringController{flow: flow, export: export}
}

func monitoringQuery(ctx *fiber.Ctx) (services.MonitoringQuery, error) {
	var q services.MonitoringQuery
	if err := ctx.QueryParser(&q); err != nil {
		return q, apperror.Wrap(apperror.ErrValidation, "parameter filter tidak valid")
	}
	return q, nil
}

func monitoringViews(rows []models.Monitoring) []models.MonitoringView {
	views := make([]models.MonitoringView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.View())
	}
	return views
}

func (c *MonitoringController) List(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	q, err := monitoringQuery(ctx)
	if err != nil {
		return err
	}
	rows, err := c.flow.List(ctx.UserContext(), p, q)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "Laporan monitoring found", monitoringViews(rows))
}

// FinalReport hanya memuat laporan yang sudah disetujui kepala bidang.
func (c *MonitoringController) FinalReport(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	q, err := monitoringQuery(ctx)
	if err != nil {
		return err
	}
	rows, err := c.flow.FinalReport(ctx.UserContext(), p, q)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "Laporan akhir found", monitoringViews(rows))
}

func (c *MonitoringController) Get(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	row, err := c.flow.Get(ctx.UserContext(), p, id)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "Laporan monitoring found", row.View())
}

func (c *MonitoringController) History(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	rows, err := c.flow.History(ctx.UserContext(), p, id)
	if err != nil {
		return err
	}
	return helpers.OK(ctx, "Riwayat status", rows)
}

func (c *MonitoringController) Create(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	var input services.MonitoringInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	row, err := c.flow.Create(ctx.UserContext(), p, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusCreated, section(p, "monitoring"), "Laporan monitoring berhasil dikirim", row.View())
}

func (c *MonitoringController) Update(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	var input services.MonitoringInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	row, err := c.flow.Update(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "monitoring"), "Laporan monitoring berhasil diperbarui", row.View())
}

func (c *MonitoringController) Delete(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.flow.Delete(ctx.UserContext(), p, id); err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "monitoring"), "Laporan monitoring berhasil dihapus", nil)
}

func (c *MonitoringController) Verify(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	var input services.VerifyInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	row, err := c.flow.Verify(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "monitoring"), "Verifikasi laporan tersimpan", row.View())
}

func (c *MonitoringController) Export(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	q, err := monitoringQuery(ctx)
	if err != nil {
		return err
	}
	out, err := c.export.Monitoring(ctx.UserContext(), p, q)
	return sendExport(ctx, out, err)
}
