package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stores-admin/internal/handler"
	"go-stores-admin/internal/middleware"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/service"
	"go-stores-admin/internal/source"
	"go-stores-admin/internal/store"
	"go-stores-admin/internal/ws"
	"go-stores-admin/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	pg := source.NewPostgres(db)
	if err := pg.Migrate(); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	if err := pg.Seed(); err != nil {
		log.Printf("Warning: Failed to seed reference data: %v", err)
	}

	userRepo := source.NewUserRepo(db)
	seedAdminUser(userRepo)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. In-memory store, loaded from the database before serving.
	st := store.New()
	reloadService := service.NewReloadService(st, pg, pg, wsHub)
	report, err := reloadService.Bootstrap()
	if err != nil {
		log.Fatal("Failed to load data from database: ", err)
	}
	if len(report.Errors) > 0 {
		// A bad table at startup means there is no previous snapshot to
		// fall back on. Refuse to serve partial data.
		log.Fatal("Startup data failed validation: ", report.Errors)
	}
	log.Printf("Data loaded: %d tables", len(report.Tables))

	// 5. Dependency Injection (Wiring Layers)
	invService := service.NewInventoryService(st, pg, wsHub, nil)
	signOutService := service.NewSignOutService(st, pg, wsHub, nil)
	medicalService := service.NewMedicalService(st, pg, nil)
	dashService := service.NewDashboardService(st)
	dirService := service.NewDirectoryService(st)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo)

	invHandler := handler.NewInventoryHandler(invService)
	signOutHandler := handler.NewSignOutHandler(signOutService)
	medicalHandler := handler.NewMedicalHandler(medicalService)
	dashHandler := handler.NewDashboardHandler(dashService)
	dirHandler := handler.NewDirectoryHandler(dirService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(reloadService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stores Admin v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Get("/me", authHandler.Me)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard Routes (authenticated users can view)
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/categories", dashHandler.GetCategoryRollups)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)
	protected.Get("/dashboard/expiring-contracts", dashHandler.GetExpiringContracts)

	// Inventory Routes
	protected.Get("/categories", invHandler.GetCategories)
	protected.Get("/categories/:name/items", invHandler.GetItemsByCategory)
	protected.Get("/items/search", invHandler.SearchItems)
	protected.Get("/items/low-stock", invHandler.GetLowStock)
	protected.Get("/items/:code", invHandler.GetItem)
	protected.Get("/items/:code/movements", invHandler.GetItemMovements)
	protected.Get("/items/:code/reconcile", invHandler.GetReconciliation)
	protected.Post("/items", middleware.RequirePrivilege(model.PrivInventoryCreate), invHandler.CreateItem)
	protected.Put("/items/:code", middleware.RequirePrivilege(model.PrivInventoryUpdate), invHandler.UpdateItem)
	protected.Delete("/items/:code", middleware.RequirePrivilege(model.PrivInventoryUpdate), invHandler.DeactivateItem)
	protected.Post("/items/:code/adjust", middleware.RequirePrivilege(model.PrivInventoryAdjust), invHandler.AdjustStock)
	protected.Post("/items/:code/correct", middleware.RequirePrivilege(model.PrivInventoryAdjust), invHandler.CorrectStock)

	// Equipment & Sign-Out Routes
	protected.Get("/equipment", signOutHandler.GetEquipment)
	protected.Get("/equipment/:code/history", signOutHandler.GetEquipmentHistory)
	protected.Post("/signouts", middleware.RequirePrivilege(model.PrivSignOutCreate), signOutHandler.CheckOut)
	protected.Post("/equipment/:code/checkin", middleware.RequirePrivilege(model.PrivSignOutCreate), signOutHandler.CheckIn)
	protected.Post("/equipment/:code/force-checkin", middleware.RequirePrivilege(model.PrivSignOutForce), signOutHandler.ForceCheckIn)
	protected.Post("/equipment/:code/maintenance", middleware.RequirePrivilege(model.PrivEquipmentUpdate), signOutHandler.MarkMaintenance)
	protected.Post("/equipment/:code/available", middleware.RequirePrivilege(model.PrivEquipmentUpdate), signOutHandler.MarkAvailable)
	protected.Get("/signouts/outstanding", signOutHandler.GetOutstanding)
	protected.Get("/signouts/holder/:employeeNo", signOutHandler.GetByHolder)

	// Medical Incident Routes
	protected.Get("/incidents", medicalHandler.GetIncidents)
	protected.Get("/incidents/summary", medicalHandler.GetSummary)
	protected.Get("/incidents/:id", medicalHandler.GetIncident)
	protected.Post("/incidents", middleware.RequirePrivilege(model.PrivMedicalCreate), medicalHandler.ReportIncident)
	protected.Put("/incidents/:id/status", middleware.RequirePrivilege(model.PrivMedicalUpdate), medicalHandler.UpdateStatus)
	protected.Put("/incidents/:id/treatment", middleware.RequirePrivilege(model.PrivMedicalUpdate), medicalHandler.RecordTreatment)

	// Directory Routes
	protected.Get("/suppliers", dirHandler.GetSuppliers)
	protected.Get("/suppliers/:name", dirHandler.GetSupplier)
	protected.Get("/employees", dirHandler.GetEmployees)
	protected.Get("/employees/:employeeNo", dirHandler.GetEmployee)

	// User Management Routes
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege(model.PrivUserUpdate), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege(model.PrivUserDelete), userHandler.DeleteUser)

	// Admin Routes
	protected.Post("/admin/reload", middleware.RequirePrivilege(model.PrivAdminReload), adminHandler.Reload)

	// Roles are in-code; expose them for the user management UI.
	protected.Get("/roles", func(c *fiber.Ctx) error {
		return c.JSON(model.DefaultRoles)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdminUser creates the default master admin account if it doesn't exist.
func seedAdminUser(userRepo source.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		FullName: "Master Administrator",
		RoleCode: model.RoleMasterAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("✅ Admin user created: %s (MASTER_ADMIN)", email)
}
