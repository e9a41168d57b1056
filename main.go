package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/config"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers"
	"github.com/Annisa878/perikanan-tangkap-sub001/controllers/idgen"
	"github.com/Annisa878/perikanan-tangkap-sub001/database"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/migration"
	"github.com/Annisa878/perikanan-tangkap-sub001/notify"
	"github.com/Annisa878/perikanan-tangkap-sub001/repositories"
	"github.com/Annisa878/perikanan-tangkap-sub001/routes"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	zl, err := logger.Init(config.APP_ENV, config.LOG_LEVEL)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	idgen.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := database.FromConfig()
	if err := database.EnsureDatabaseExists(ctx, settings); err != nil {
		zl.Warn("Gagal memastikan database ada", zap.Error(err))
	}

	db, err := database.Connect(ctx, settings)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		zl.Fatal("Failed to auto migrate", zap.Error(err))
	}
	if err := database.RunSeeders(db, config.SeedPassword); err != nil {
		zl.Fatal("Failed to seed", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	kubRepo := repositories.NewKubRepository(db)
	pengajuanRepo := repositories.NewPengajuanRepository(db)
	monitoringRepo := repositories.NewMonitoringRepository(db)

	mailer := notify.New(notify.SMTPConfig{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		User:     config.SMTPUser,
		Password: config.SMTPPassword,
		Sender:   config.SMTPSender,
	})

	// Services
	authService := services.NewAuthService(userRepo, sessionRepo, services.TokenConfig{
		Secret:     []byte(config.JWTSecret),
		AccessTTL:  config.AccessTokenTTL(),
		RefreshTTL: config.RefreshTokenTTL(),
	})
	userService := services.NewUserService(userRepo)
	kubService := services.NewKubService(kubRepo)
	pengajuanService := services.NewPengajuanService(pengajuanRepo, kubRepo, userRepo, mailer)
	monitoringService := services.NewMonitoringService(monitoringRepo, kubRepo, userRepo, mailer)
	dashboardService := services.NewDashboardService(pengajuanRepo, monitoringRepo, userRepo)
	exportService := services.NewExportService(pengajuanRepo, monitoringRepo)

	app := fiber.New(fiber.Config{
		AppName:      "Perikanan Tangkap",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: apperror.Handler,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	// Setup CORS middleware
	config.SetupCORS(app)

	routes.Setup(app, routes.Deps{
		DB:         db,
		Resolver:   authService,
		Auth:       controllers.NewAuthController(authService),
		Users:      controllers.NewUserController(userService),
		Kub:        controllers.NewKubController(kubService),
		Pengajuan:  controllers.NewPengajuanController(pengajuanService, exportService),
		Monitoring: controllers.NewMonitoringController(monitoringService, exportService),
		Dashboard:  controllers.NewDashboardController(dashboardService),
	})

	go func() {
		<-ctx.Done()
		zl.Info("Server berhenti")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zl.Error("Shutdown gagal", zap.Error(err))
		}
	}()

	port := config.APP_PORT
	zl.Info("Server berjalan", zap.String("port", port))

	if err := app.Listen(":" + port); err != nil {
		zl.Fatal("Listen gagal", zap.Error(err))
	}
}
