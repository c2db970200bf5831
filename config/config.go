package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string
	Env        string
	UploadDir  string
	Auth       AuthConfig
}

// AuthConfig holds the token settings. It is built once at startup and passed
// explicitly to the auth constructors.
type AuthConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		Auth: AuthConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Issuer:     getEnv("JWT_ISSUER", "jobnest"),
			Audience:   getEnv("JWT_AUDIENCE", "jobnest-clients"),
			AccessTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_SECONDS", 900)) * time.Second,
			RefreshTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_DAYS", 30)) * 24 * time.Hour,
		},
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
