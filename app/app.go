// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"active-teams-api/config"
	"active-teams-api/db"
	"active-teams-api/handler"
	"active-teams-api/logger"
	"active-teams-api/repository"
	"active-teams-api/router"
	"active-teams-api/service"
)

// buildRouter wires repositories, services and handlers around the given
// connections. Shared by Run and NewTestApp so the test router matches
// production wiring exactly.
func buildRouter(database *sql.DB, cache service.ICacheClient) http.Handler {
	userRepo := repository.NewUserRepository(database)
	personRepo := repository.NewPersonRepository(database)
	eventRepo := repository.NewEventRepository(database)
	cellGroupRepo := repository.NewCellGroupRepository(database)
	taskRepo := repository.NewTaskRepository(database)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	personService := service.NewPersonService(personRepo)
	eventService := service.NewEventService(eventRepo, personRepo, cache)
	cellGroupService := service.NewCellGroupService(cellGroupRepo, personRepo)
	taskService := service.NewTaskService(taskRepo, personRepo)

	return router.NewRouter(router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Person:    handler.NewPersonHandler(personService),
		Event:     handler.NewEventHandler(eventService),
		CellGroup: handler.NewCellGroupHandler(cellGroupService),
		Task:      handler.NewTaskHandler(taskService),
		AuthMW:    handler.NewAuthMiddleware(authService),
	})
}

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if config.AppConfig.Database.AutoMigrate {
		if err := db.Migrate("file://db/migrations"); err != nil {
			logger.Log.Fatalf("Error running migrations: %v", err)
		}
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// TestApp exposes the wired router and its database handle to integration
// tests.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, cache service.ICacheClient) *TestApp {
	return &TestApp{
		DB:     database,
		Router: buildRouter(database, cache),
	}
}
