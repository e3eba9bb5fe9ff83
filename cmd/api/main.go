package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/perfumeria-api/internal/application/analytics"
	"github.com/jhoicas/perfumeria-api/internal/application/auth"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
	"github.com/jhoicas/perfumeria-api/internal/application/notify"
	"github.com/jhoicas/perfumeria-api/internal/application/ports"
	"github.com/jhoicas/perfumeria-api/internal/application/usecase"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/perfumeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/push"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/realtime"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/perfumeria-api/internal/interfaces/http"
	"github.com/jhoicas/perfumeria-api/pkg/config"
	"github.com/jhoicas/perfumeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Lista de sesiones revocadas: Redis si está configurado, memoria si no.
	var revocation ports.RevocationList
	if cfg.Redis.Addr != "" {
		redisList, err := session.NewRedisRevocationList(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer redisList.Close()
		revocation = redisList
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesiones revocadas en Redis")
	} else {
		revocation = session.NewMemoryRevocationList()
		log.Warn().Msg("REDIS_ADDR vacío: sesiones revocadas en memoria")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	subscriptionRepo := postgres.NewPushSubscriptionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	prom := metrics.NewPrometheus()

	hub := realtime.NewHub(log)
	go hub.Run(ctx)

	pushSender := push.NewWebPushSender(cfg.Push)
	if !pushSender.Enabled() {
		log.Warn().Msg("llaves VAPID ausentes: Web Push deshabilitado")
	}
	dispatcher := notify.NewDispatcher(notificationRepo, subscriptionRepo, hub, pushSender, prom, log)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, dispatcher, prom, log)
	historyUC := inventory.NewHistoryUseCase(movementRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(productRepo)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo, registerMovementUC)
	userUC := usecase.NewUserUseCase(userRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, dispatcher, log)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, subscriptionRepo, pushSender)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, movementRepo)
	statsUC := appanalytics.NewStatsUseCase(orderRepo, transactionRepo)
	exportUC := appanalytics.NewExportUseCase(orderRepo, transactionRepo, movementRepo, map[string]ports.ReportGenerator{
		"csv": csvexport.NewGenerator(),
		"pdf": infrapdf.NewMarotoReportGenerator(),
	})
	authUC := auth.NewAuthUseCase(userRepo, revocation, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	created, err := authUC.BootstrapAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(prom.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Perfumería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.Clients()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		History:          historyUC,
		Replenishment:    replenishmentUC,
		OrderUC:          orderUC,
		TransactionUC:    transactionUC,
		NotificationUC:   notificationUC,
		DashboardUC:      dashboardUC,
		StatsUC:          statsUC,
		ExportUC:         exportUC,
		Hub:              hub,
		CookieSecure:     cfg.HTTP.CookieSecure,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
