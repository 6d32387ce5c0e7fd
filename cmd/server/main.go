package main

import (
	"net/http"

	_ "assignportal/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"assignportal/internal/auth"
	"assignportal/internal/cache"
	"assignportal/internal/config"
	"assignportal/internal/db"
	"assignportal/internal/handler"
	"assignportal/internal/logger"
	"assignportal/internal/repository"
	"assignportal/internal/router"
	"assignportal/internal/service"
)

// @title Assignment Portal API
// @version 1.0
// @description Assignment portal with user and admin roles, assignment uploads, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogFile)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	log.Info("Database connected")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	assignmentRepo := repository.NewAssignmentRepository(gormDB)

	// Initialize auth and services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(userRepo, jwtService, cacheClient)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(accountService, assignmentService, log)
	adminHandler := handler.NewAdminHandler(accountService, assignmentService, log)

	// Register routes
	router.Register(e, jwtService, userHandler, adminHandler)

	addr := ":" + cfg.ServerPort
	log.Infof("Server is running on port %s", cfg.ServerPort)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
