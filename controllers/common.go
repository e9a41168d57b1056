package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/reports"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// section: "/kepala-bidang/dashboard" + "pengajuan" -> "/kepala-bidang/pengajuan".
func section(p services.Principal, name string) string {
	return strings.TrimSuffix(p.Role.DashboardPath(), "/dashboard") + "/" + name
}

// sendExport menulis workbook langsung ke body response. Tidak ada baris
// dijawab sebagai pesan biasa tanpa file.
func sendExport(ctx *fiber.Ctx, out *services.Export, err error) error {
	if errors.Is(err, apperror.ErrNothingToExport) {
		return helpers.Info(ctx, apperror.ErrNothingToExport.Error())
	}
	if err != nil {
		return err
	}
	defer out.File.Close()

	ctx.Set(fiber.HeaderContentType, reports.ContentTypeXLSX)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	if err := out.File.Write(ctx.Response().BodyWriter()); err != nil {
		return fmt.Errorf("tulis workbook: %w", err)
	}
	logger.Info("export dibuat", zap.String("file", out.Filename), zap.Int("rows", out.Rows))
	return nil
}
