package routes

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/gofiber/fiber/v2"
)

func SetupKubRoutes(app *fiber.App, kubController *controllers.KubController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/kub", auth)
	manage := middleware.RequireCapability(roles.ManageKub)

	api.Get("/", kubController.List)
	api.Post("/", manage, kubController.Create)
	api.Get("/:id", kubController.Get)
	api.Put("/:id", manage, kubController.Update)
}
