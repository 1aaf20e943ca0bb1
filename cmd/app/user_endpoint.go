package main

import (
	"errors"
	"net/http"

	"UserAuthAPI/internal/middleware"
	"UserAuthAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func userDataHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return failJSON(c, http.StatusUnauthorized, "Not authorized. Login again")
		}

		user, err := authSvc.GetUserData(c.Request().Context(), claims.UserID)
		if err != nil {
			// the only route where a stale principal is a 404
			if errors.Is(err, services.ErrUserNotFound) {
				return failJSON(c, http.StatusNotFound, "User not found")
			}
			return respondServiceError(c, err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  "User data fetched successfully",
			"userData": user.Public(),
		})
	}
}

func registerUserRoutes(g *echo.Group, authSvc *services.AuthService) {
	user := g.Group("/user")
	user.Use(middleware.JWTMiddleware())
	user.GET("/data", userDataHandler(authSvc))
}
