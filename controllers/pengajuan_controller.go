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

type PengajuanFlow interface {
	Create(ctx context.Context, p services.Principal, in services.PengajuanInput) (*models.Pengajuan, error)
	Update(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.PengajuanInput) (*models.Pengajuan, error)
	VerifyAdmin(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.VerifyInput) (*models.Pengajuan, error)
	VerifyKabid(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.VerifyInput) (*models.Pengajuan, error)
	RecordBAST(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.BASTInput) (*models.Pengajuan, error)
	Delete(ctx context.Context, p services.Principal, id types.SnowflakeID) error
	Get(ctx context.Context, p services.Principal, id types.SnowflakeID) (*models.Pengajuan, error)
	History(ctx context.Context, p services.Principal, id types.SnowflakeID) ([]models.StatusHistory, error)
	List(ctx context.Context, p services.Principal, q services.PengajuanQuery) ([]models.Pengajuan, error)
}

type PengajuanExporter interface {
	Pengajuan(ctx context.Context, p services.Principal, q services.PengajuanQuery) (*services.Export, error)
}

type PengajuanController struct {
	flow   PengajuanFlow
	export PengajuanExporter
}

func NewPengajuanController(flow PengajuanFlow, export PengajuanExporter) *PengajuanController {
	return &PengajuanController{flow: flow, export: export}
}

func pengajuanQuery(ctx *fiber.Ctx) (services.PengajuanQuery, error) {
	var q services.PengajuanQuery
	if err := ctx.QueryParser(&q); err != nil {
		return q, apperror.Wrap(apperror.ErrValidation, "parameter filter tidak valid")
	}
	return q, nil
}

func (c *PengajuanController) List(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	q, err := pengajuanQuery(ctx)
	if err != nil {
		return err
	}
	rows, err := c.flow.List(ctx.UserContext(), p, q)
	if err != nil {
		return err
	}
	views := make([]models.PengajuanView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.View())
	}
	return helpers.OK(ctx, "Pengajuan found", views)
}

func (c *PengajuanController) Get(ctx *fiber.Ctx) error {
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
	return helpers.OK(ctx, "Pengajuan found", row.View())
}

func (c *PengajuanController) History(ctx *fiber.Ctx) error {
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

func (c *PengajuanController) Create(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	var input services.PengajuanInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	row, err := c.flow.Create(ctx.UserContext(), p, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusCreated, section(p, "pengajuan"), "Pengajuan berhasil dikirim", row.View())
}

func (c *PengajuanController) Update(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	var input services.PengajuanInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	row, err := c.flow.Update(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "pengajuan"), "Pengajuan berhasil diperbarui", row.View())
}

func (c *PengajuanController) Delete(ctx *fiber.Ctx) error {
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
	return helpers.Success(ctx, fiber.StatusOK, section(p, "pengajuan"), "Pengajuan berhasil dihapus", nil)
}

func (c *PengajuanController) VerifyAdmin(ctx *fiber.Ctx) error {
	return c.verify(ctx, c.flow.VerifyAdmin, "Verifikasi admin tersimpan")
}

func (c *PengajuanController) VerifyKabid(ctx *fiber.Ctx) error {
	return c.verify(ctx, c.flow.VerifyKabid, "Keputusan kepala bidang tersimpan")
}

type verifyFunc func(ctx context.Context, p services.Principal, id types.SnowflakeID, in services.VerifyInput) (*models.Pengajuan, error)

func (c *PengajuanController) verify(ctx *fiber.Ctx, fn verifyFunc, message string) error {
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
	row, err := fn(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "pengajuan"), message, row.View())
}

func (c *PengajuanController) RecordBAST(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	id, err := helpers.SnowflakeParam(ctx, "id")
	if err != nil {
		return err
	}
	var input services.BASTInput
	if err := helpers.Bind(ctx, &input); err != nil {
		return err
	}
	row, err := c.flow.RecordBAST(ctx.UserContext(), p, id, input)
	if err != nil {
		return err
	}
	return helpers.Success(ctx, fiber.StatusOK, section(p, "pengajuan"), "BAST berhasil dicatat", row.View())
}

func (c *PengajuanController) Export(ctx *fiber.Ctx) error {
	p, err := middleware.CurrentPrincipal(ctx)
	if err != nil {
		return err
	}
	q, err := pengajuanQuery(ctx)
	if err != nil {
		return err
	}
	out, err := c.export.Pengajuan(ctx.UserContext(), p, q)
	return sendExport(ctx, out, err)
}
