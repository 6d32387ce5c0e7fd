package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"assignportal/internal/auth"
	"assignportal/internal/handler"
	"assignportal/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Assignment Portal API"})
	})

	authenticate := auth.Authenticate(jwtService)

	// User routes
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/upload", userHandler.UploadAssignment, authenticate, auth.RequireRole(model.RoleUser))
	users.GET("/admins", userHandler.GetAdmins, authenticate)

	// Admin routes
	admins := api.Group("/admins")
	admins.POST("/register", adminHandler.Register)
	admins.POST("/login", adminHandler.Login)
	admins.GET("/assignments", adminHandler.GetAssignments, authenticate, auth.RequireRole(model.RoleAdmin))
	admins.POST("/assignments/:id/accept", adminHandler.AcceptAssignment, authenticate, auth.RequireRole(model.RoleAdmin))
	admins.POST("/assignments/:id/reject", adminHandler.RejectAssignment, authenticate, auth.RequireRole(model.RoleAdmin))

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Endpoint Not Found"})
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
