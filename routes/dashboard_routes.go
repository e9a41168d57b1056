package routes

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/dashboard", auth)

	api.Get("/", dashboardController.GetDashboard)
}
