package routes

import (
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController, auth, limiter fiber.Handler) {
	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/register", limiter, authController.Register)
	api.Post("/login", limiter, authController.Login)
	api.Post("/refresh", authController.Refresh)

	apiLogout := app.Group(config.MAIN_ROUTES+"/auth", auth)
	apiLogout.Get("/logout", authController.Logout)
	apiLogout.Get("/me", authController.Me)
	apiLogout.Put("/me/username", authController.UpdateUsername)
}
