package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	PaymentsMockMode    bool

	GuestCartCookieName string
	GuestCartHashKey    string
	GuestCartBlockKey   string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	return &Config{
		Env:      getEnv("APP_ENV", "dev"),
		Port:     getEnv("PORT", "8000"),
		DBSource: getEnv("DB_SOURCE", "app.db"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    24 * time.Hour,

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PaymentsMockMode:    getEnv("PAYMENTS_MOCK_MODE", "true") == "true",

		GuestCartCookieName: getEnv("GUEST_CART_COOKIE_NAME", "guest_cart"),
		GuestCartHashKey:    getEnv("GUEST_CART_HASH_KEY", "guest-cart-hash-key-change-me!!"),
		GuestCartBlockKey:   os.Getenv("GUEST_CART_BLOCK_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
