package routes

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/gofiber/fiber/v2"
)

func SetupMonitoringRoutes(app *fiber.App, controller *controllers.MonitoringController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/monitoring", auth)
	submit := middleware.RequireCapability(roles.SubmitMonitoring)

	api.Get("/laporan-akhir", middleware.RequireCapability(roles.ViewFinalReport), controller.FinalReport)
	api.Get("/export", middleware.RequireCapability(roles.ExportMonitoring), controller.Export)
	api.Get("/", controller.List)
	api.Post("/", submit, controller.Create)
	api.Get("/:id", controller.Get)
	api.Get("/:id/history", controller.History)
	api.Put("/:id", submit, controller.Update)
	api.Delete("/:id", submit, controller.Delete)
	api.Put("/:id/verifikasi", middleware.RequireCapability(roles.VerifyMonitoring), controller.Verify)
}
