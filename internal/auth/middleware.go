package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"assignportal/internal/model"
	"assignportal/internal/response"
)

// ContextKey is the echo context key under which verified claims are stored.
const ContextKey = "user"

// Authenticate returns middleware that extracts and verifies the bearer
// token. A missing Authorization header yields 401, a present but invalid
// token yields 403.
func Authenticate(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return response.Fail(c, http.StatusUnauthorized, "Access denied", nil)
			}
			return response.Fail(c, http.StatusForbidden, "Invalid token", err)
		},
	})
}

// RequireRole returns middleware enforcing that the authenticated account
// carries the expected role. Must run after Authenticate.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil || claims.Role != role {
				return response.Fail(c, http.StatusForbidden, "Unauthorized role", nil)
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims attached to the request, or nil if
// the request did not pass through Authenticate.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(ContextKey).(*Claims)
	return claims
}
