package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-sweetshop/internal/handler"
	"go-sweetshop/internal/middleware"
	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/internal/service"
	"go-sweetshop/internal/ws"
	"go-sweetshop/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Sweet{}, &model.User{})

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	sweetRepo := repository.NewSweetRepo(db)
	invRepo := repository.NewInventoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	sweetService := service.NewSweetService(sweetRepo, wsHub)
	invService := service.NewInventoryService(invRepo, wsHub)
	authService := service.NewAuthService(userRepo)

	sweetHandler := handler.NewSweetHandler(sweetService)
	invHandler := handler.NewInventoryHandler(invService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sweet Shop API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication; role checks happen inside the
	// services so restock/delete authorization is a single in-process gate.
	sweets := api.Group("/sweets", middleware.RequireAuth(userRepo))
	sweets.Get("/", sweetHandler.GetSweets)
	sweets.Post("/", sweetHandler.CreateSweet)
	sweets.Get("/search", sweetHandler.SearchSweets)
	sweets.Get("/:id", sweetHandler.GetSweet)
	sweets.Put("/:id", sweetHandler.UpdateSweet)
	sweets.Delete("/:id", sweetHandler.DeleteSweet)
	sweets.Post("/:id/purchase", invHandler.Purchase)
	sweets.Post("/:id/restock", invHandler.Restock)

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

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Username: "admin",
		Role:     model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("✅ Admin user created: admin (ADMIN)")
	}
}
