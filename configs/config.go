package configs

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	OrderQuota  int
	OrderWindow time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using environment")
	}

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBSource:    getEnv("DB_SOURCE", "rmpedidos.db"),
		Port:        getEnv("PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      time.Duration(24) * time.Hour,
		OrderQuota:  5,
		OrderWindow: time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
