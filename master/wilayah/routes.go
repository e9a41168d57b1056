package wilayah

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupWilayahRoutes tidak memakai middleware auth; form registrasi
// membutuhkan daftar domisili sebelum pengguna masuk.
func SetupWilayahRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group(config.MAIN_ROUTES + "/meta")
	handler := NewWilayahHandler(db)

	api.Get("/domisili", handler.GetDomisili)
	api.Get("/zona", handler.GetZona)
}
