package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/perfumeria-api/internal/application/analytics"
	"github.com/jhoicas/perfumeria-api/internal/application/auth"
	"github.com/jhoicas/perfumeria-api/internal/application/inventory"
	"github.com/jhoicas/perfumeria-api/internal/application/usecase"
	"github.com/jhoicas/perfumeria-api/internal/infrastructure/realtime"
)

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	History          *inventory.HistoryUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	OrderUC          *usecase.OrderUseCase
	TransactionUC    *usecase.TransactionUseCase
	NotificationUC   *usecase.NotificationUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	StatsUC          *appanalytics.StatsUseCase
	ExportUC         *appanalytics.ExportUseCase
	Hub              *realtime.Hub
	CookieSecure     bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Rutas protegidas: sesión válida y usuario activo
	protected := api.Group("/", AuthMiddleware(deps.AuthUC), RequireActiveUser(deps.UserUC))
	adminOnly := RequireRole(RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Inventory (productos)
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.History, deps.Replenishment)
	inv := protected.Group("/inventory")
	inv.Get("/", productHandler.List)
	inv.Get("/low-stock", inventoryHandler.GetReplenishmentList)
	inv.Get("/:id", productHandler.GetByID)
	inv.Post("/", adminOnly, productHandler.Create)
	inv.Put("/:id", adminOnly, productHandler.Update)
	inv.Delete("/:id", adminOnly, productHandler.Delete)

	// Shipments (movimientos)
	shipments := protected.Group("/shipments")
	shipments.Get("/", inventoryHandler.ListMovements)
	shipments.Get("/recent", inventoryHandler.RecentMovements)
	shipments.Get("/stats", inventoryHandler.MovementStats)
	shipments.Post("/", inventoryHandler.RegisterMovement)

	// Orders
	analyticsHandler := NewAnalyticsHandler(deps.StatsUC, deps.ExportUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/stats", analyticsHandler.OrderStats)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/", orderHandler.Create)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)

	// Transactions
	txHandler := NewTransactionHandler(deps.TransactionUC)
	txs := protected.Group("/transactions")
	txs.Get("/", txHandler.List)
	txs.Get("/stats", analyticsHandler.TransactionStats)
	txs.Get("/:id", txHandler.GetByID)
	txs.Post("/", txHandler.Create)
	txs.Put("/:id", adminOnly, txHandler.Update)
	txs.Delete("/:id", adminOnly, txHandler.Delete)

	// Dashboard y exportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/export/:resource", adminOnly, analyticsHandler.Export)

	// Users (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/password", userHandler.ResetPassword)
	users.Delete("/:id", userHandler.Delete)

	// Notifications (admin)
	notificationHandler := NewNotificationHandler(deps.NotificationUC, deps.Hub)
	notifications := protected.Group("/notifications", adminOnly)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/ws", notificationHandler.UpgradeWS, notificationHandler.Stream())
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/", notificationHandler.Cleanup)

	// Push (admin)
	push := protected.Group("/push", adminOnly)
	push.Get("/vapid-public-key", notificationHandler.VAPIDPublicKey)
	push.Post("/subscribe", notificationHandler.Subscribe)
	push.Post("/unsubscribe", notificationHandler.Unsubscribe)
}
