// Package config builds the process configuration once at startup. Every
// secret or endpoint lives here and is passed by reference into the pieces
// that need it; nothing reads the environment after Load returns.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Mailgun struct {
	Domain    string
	APIKey    string
	FromEmail string
	FromName  string
	APIURL    string
}

type Stripe struct {
	SecretKey string
	APIURL    string
	Currency  string
}

type Config struct {
	Port          string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	HashingSecret string
	AdminAPIKey   string
	TokenTTL      time.Duration
	Stripe        Stripe
	Mailgun       Mailgun
}

// Load reads the .env file if present and assembles the configuration from
// the environment. The hashing secret is the only hard requirement: without
// it user ids and password hashes cannot be derived.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		HashingSecret: os.Getenv("HASHING_SECRET"),
		AdminAPIKey:   os.Getenv("ADMIN_API_KEY"),
		TokenTTL:      time.Hour,
		Stripe: Stripe{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
			APIURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com"),
			Currency:  getEnv("STRIPE_CURRENCY", "usd"),
		},
		Mailgun: Mailgun{
			Domain:    os.Getenv("MAILGUN_DOMAIN"),
			APIKey:    os.Getenv("MAILGUN_API_KEY"),
			FromEmail: os.Getenv("MAILGUN_FROM_EMAIL"),
			FromName:  getEnv("MAILGUN_FROM_NAME", "Pizza Delivery System"),
			APIURL:    getEnv("MAILGUN_API_URL", "https://api.mailgun.net"),
		},
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, errors.New("invalid TOKEN_TTL: " + err.Error())
		}
		cfg.TokenTTL = d
	}

	if cfg.HashingSecret == "" {
		return nil, errors.New("HASHING_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
