package main

import (
	"errors"
	"log"
	"net/http"

	"UserAuthAPI/internal/config"
	"UserAuthAPI/internal/middleware"
	"UserAuthAPI/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

var validate = validator.New()

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type verifyAccountRequest struct {
	Otp string `json:"otp" validate:"required"`
}

type sendResetOtpRequest struct {
	Email string `json:"email" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	Otp         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func failJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// respondServiceError maps service errors onto the response contract:
// missing fields and duplicate emails are 400s, business failures ride an
// HTTP 200 with success=false, anything unexpected is a logged 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return failJSON(c, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, services.ErrEmailTaken):
		return failJSON(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, services.ErrInvalidEmail):
		return failJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return failJSON(c, http.StatusOK, "Invalid credentials")
	case errors.Is(err, services.ErrAlreadyVerified):
		return failJSON(c, http.StatusOK, "Account is already verified")
	case errors.Is(err, services.ErrInvalidOtp):
		return failJSON(c, http.StatusOK, "Invalid OTP")
	case errors.Is(err, services.ErrOtpExpired):
		return failJSON(c, http.StatusOK, "OTP is expired. Resend it again")
	case errors.Is(err, services.ErrEmailNotRegistered):
		return failJSON(c, http.StatusOK, "This email is not registered with us")
	case errors.Is(err, services.ErrUserNotFound):
		return failJSON(c, http.StatusOK, "User not found")
	default:
		log.Printf("internal error on %s: %v", c.Path(), err)
		return failJSON(c, http.StatusInternalServerError, "Internal server error")
	}
}

func signupHandler(authSvc *services.AuthService, cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(signupRequest)
		if err := c.Bind(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "invalid request")
		}
		if err := validate.Struct(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "All fields are required")
		}

		user, err := authSvc.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
		if err != nil {
			return respondServiceError(c, err)
		}

		token, err := middleware.GenerateToken(user.ID, user.Email)
		if err != nil {
			log.Printf("token issue error: %v", err)
			return failJSON(c, http.StatusInternalServerError, "Internal server error")
		}
		middleware.SetSessionCookie(c, token, cfg.IsProduction())

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "User created successfully",
			"user":    user.Public(),
		})
	}
}

func loginHandler(authSvc *services.AuthService, cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "invalid request")
		}
		if err := validate.Struct(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "All fields are required")
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return respondServiceError(c, err)
		}

		token, err := middleware.GenerateToken(user.ID, user.Email)
		if err != nil {
			log.Printf("token issue error: %v", err)
			return failJSON(c, http.StatusInternalServerError, "Internal server error")
		}
		middleware.SetSessionCookie(c, token, cfg.IsProduction())

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Login success",
			"user":    user.Public(),
		})
	}
}

func logoutHandler(cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		middleware.ClearSessionCookie(c, cfg.IsProduction())
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Logged out successfully",
		})
	}
}

func sendVerifyOtpHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return failJSON(c, http.StatusUnauthorized, "Not authorized. Login again")
		}

		if err := authSvc.SendVerifyOtp(c.Request().Context(), claims.UserID); err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "OTP sent successfully",
		})
	}
}

func verifyAccountHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return failJSON(c, http.StatusUnauthorized, "Not authorized. Login again")
		}

		req := new(verifyAccountRequest)
		if err := c.Bind(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "invalid request")
		}
		if err := validate.Struct(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "Please provide missing details")
		}

		if err := authSvc.VerifyEmail(c.Request().Context(), claims.UserID, req.Otp); err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Email verified successfully",
		})
	}
}

// isAuthHandler only runs behind the JWT middleware, so reaching it already
// proves a valid session.
func isAuthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "User is authenticated",
		})
	}
}

func sendResetOtpHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(sendResetOtpRequest)
		if err := c.Bind(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "invalid request")
		}
		if err := validate.Struct(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "Please provide email Id")
		}

		if err := authSvc.SendResetOtp(c.Request().Context(), req.Email); err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "OTP sent successfully",
		})
	}
}

func resetPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resetPasswordRequest)
		if err := c.Bind(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "invalid request")
		}
		if err := validate.Struct(req); err != nil {
			return failJSON(c, http.StatusBadRequest, "Please provide missing details")
		}

		if err := authSvc.ResetPassword(c.Request().Context(), req.Email, req.Otp, req.NewPassword); err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Password has been reset successfully",
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, cfg config.Config) {
	auth := g.Group("/auth")

	// credentialLimiter: 1 req/sec, burst 5, per IP
	credentialLimiter := middleware.RateLimit(rate.Limit(1), 5)

	// public
	auth.POST("/signup", signupHandler(authSvc, cfg), credentialLimiter)
	auth.POST("/login", loginHandler(authSvc, cfg), credentialLimiter)
	auth.POST("/logout", logoutHandler(cfg))
	auth.POST("/send-reset-otp", sendResetOtpHandler(authSvc), credentialLimiter)
	auth.POST("/reset-password", resetPasswordHandler(authSvc), credentialLimiter)

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/send-verify-otp", sendVerifyOtpHandler(authSvc))
	protected.POST("/verify-account", verifyAccountHandler(authSvc))
	protected.GET("/is-auth", isAuthHandler())
}
