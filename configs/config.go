package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// shared secret for the payment gateway webhook signature
	WebhookSecret string

	// business parameters the legacy system hard-coded in controllers
	TaxRatePercent int
	DeliveryFee    int64 // minor units
	FlatDiscount   int64 // minor units
	Currency       string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBSource:       getEnv("DB_SOURCE", "hotel.db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         time.Duration(24) * time.Hour,
		WebhookSecret:  getEnv("WEBHOOK_SECRET", "changeme-webhook"),
		TaxRatePercent: getEnvInt("TAX_RATE_PERCENT", 10),
		DeliveryFee:    int64(getEnvInt("DELIVERY_FEE", 2000)),
		FlatDiscount:   int64(getEnvInt("FLAT_DISCOUNT", 0)),
		Currency:       getEnv("CURRENCY", "THB"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
