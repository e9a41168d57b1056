package routes

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/gofiber/fiber/v2"
)

func SetupPengajuanRoutes(app *fiber.App, controller *controllers.PengajuanController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/pengajuan", auth)
	submit := middleware.RequireCapability(roles.SubmitPengajuan)

	// /export harus didaftarkan sebelum /:id
	api.Get("/export", middleware.RequireCapability(roles.ExportPengajuan), controller.Export)
	api.Get("/", controller.List)
	api.Post("/", submit, controller.Create)
	api.Get("/:id", controller.Get)
	api.Get("/:id/history", controller.History)
	api.Put("/:id", submit, controller.Update)
	api.Delete("/:id", submit, controller.Delete)
	api.Put("/:id/verifikasi", middleware.RequireCapability(roles.VerifyPengajuanAdmin), controller.VerifyAdmin)
	api.Put("/:id/verifikasi-kabid", middleware.RequireCapability(roles.VerifyPengajuanKabid), controller.VerifyKabid)
	api.Put("/:id/bast", middleware.RequireCapability(roles.RecordBAST), controller.RecordBAST)
}
