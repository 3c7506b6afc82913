package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      string
	DBSource  string
	RedisAddr string
	JWTSecret string
	JWTTTL    time.Duration

	// Sweeper tuning. The four numbers are deployment configuration, not
	// hidden constants.
	PaymentWindow  time.Duration // unpaid orders older than this get cancelled
	DeliveryWindow time.Duration // deliveries older than this get completed
	PaymentEvery   time.Duration // payment sweep period
	DeliveryEvery  time.Duration // delivery sweep period
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process env")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		DBSource:  getEnv("DB_SOURCE", "takeout.db"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		PaymentWindow:  getDuration("PAYMENT_WINDOW", 15*time.Minute),
		DeliveryWindow: getDuration("DELIVERY_WINDOW", 60*time.Minute),
		PaymentEvery:   getDuration("PAYMENT_SWEEP_EVERY", time.Minute),
		DeliveryEvery:  getDuration("DELIVERY_SWEEP_EVERY", 24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("bad duration for %s: %v", key, err)
	}
	return d
}
