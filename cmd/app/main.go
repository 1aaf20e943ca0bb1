package main

import (
	"context"
	"log"
	"net/http"

	"UserAuthAPI/external/abstractapi"
	"UserAuthAPI/external/resend"
	"UserAuthAPI/external/smtp"

	"UserAuthAPI/internal/config"
	"UserAuthAPI/internal/db"
	"UserAuthAPI/internal/middleware"
	"UserAuthAPI/internal/repository"
	"UserAuthAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	middleware.SetSecret(cfg.JWTSecret)

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()
	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewAbstractReputationValidator(cfg.AbstractAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	var mailer services.EmailSender
	if cfg.Mailer == "resend" {
		mailer, err = resend.NewResendMailer(cfg.ResendAPIKey, cfg.SenderEmail)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		mailer = smtp.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SenderEmail)
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)

	// ======================
	// SERVICES
	// ======================
	otpManager := services.NewOtpManager(userRepo)
	authSvc := services.NewAuthService(userRepo, otpManager, mailer, emailValidator)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowCredentials: true,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API is running....")
	})

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, cfg)
	registerUserRoutes(api, authSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
