package routes

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userController *controllers.UserController, auth fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES+"/users", auth, middleware.RequireCapability(roles.ManageUsers))

	api.Get("/", userController.GetAllUsers)
	api.Put("/:id/role", userController.ChangeRole)
}
