package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is parsed from the environment. A .env file is loaded first when
// present so local development matches production wiring.
type Config struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	Port          string `env:"PORT" envDefault:"8080"`
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`

	Mailer      string `env:"MAILER" envDefault:"smtp"` // smtp | resend
	SenderEmail string `env:"SENDER_EMAIL" envDefault:"noreply@userauth.dev"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`

	ResendAPIKey string `env:"RESEND_API_KEY"`

	UseEmailReputation bool   `env:"USE_EMAIL_REPUTATION" envDefault:"false"`
	AbstractAPIKey     string `env:"ABSTRACT_API_KEY"`
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (if any) and parses Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
