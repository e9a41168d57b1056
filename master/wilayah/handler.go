package wilayah

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/helpers"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WilayahHandler struct {
	DB *gorm.DB
}

func NewWilayahHandler(db *gorm.DB) *WilayahHandler {
	return &WilayahHandler{DB: db}
}

// GetDomisili dipakai form registrasi, KUB, dan monitoring. Bila tabel
// wilayah belum bisa dibaca, daftar baku tetap dikirim.
func (h *WilayahHandler) GetDomisili(ctx *fiber.Ctx) error {
	var rows []Wilayah
	if err := h.DB.WithContext(ctx.UserContext()).Order("urutan asc").Find(&rows).Error; err != nil || len(rows) == 0 {
		if err != nil {
			logger.Warn("gagal membaca tabel wilayah", zap.Error(err))
		}
		rows = Rows()
	}
	return helpers.OK(ctx, "Domisili retrieved successfully", rows)
}

type zona struct {
	Kode  string `json:"kode"`
	Label string `json:"label"`
}

func (h *WilayahHandler) GetZona(ctx *fiber.Ctx) error {
	out := []zona{
		{Kode: constants.ZonaLaut, Label: constants.ZonaLabel(constants.ZonaLaut)},
		{Kode: constants.ZonaPerairanUmum, Label: constants.ZonaLabel(constants.ZonaPerairanUmum)},
	}
	return helpers.OK(ctx, "Zona retrieved successfully", out)
}
