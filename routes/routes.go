package routes

import (
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/Annisa878/perikanan-tangkap-sub001/master/wilayah"
	"github.com/Annisa878/perikanan-tangkap-sub001/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps adalah controller yang sudah dirakit di main.
type Deps struct {
	DB         *gorm.DB
	Resolver   middleware.Resolver
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Kub        *controllers.KubController
	Pengajuan  *controllers.PengajuanController
	Monitoring *controllers.MonitoringController
	Dashboard  *controllers.DashboardController
}

func Setup(app *fiber.App, deps Deps) {
	authMiddleware := middleware.Auth(deps.Resolver)

	SetupAuthRoutes(app, deps.Auth, authMiddleware, middleware.AttemptLimiter(10, time.Minute))
	SetupUserRoutes(app, deps.Users, authMiddleware)
	SetupKubRoutes(app, deps.Kub, authMiddleware)
	SetupPengajuanRoutes(app, deps.Pengajuan, authMiddleware)
	SetupMonitoringRoutes(app, deps.Monitoring, authMiddleware)
	SetupDashboardRoutes(app, deps.Dashboard, authMiddleware)
	wilayah.SetupWilayahRoutes(app, deps.DB)
}
