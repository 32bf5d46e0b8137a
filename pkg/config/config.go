package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	StorageDriver   string
	SQLitePath      string
	PostgresConnStr string
	JWTSecret       string
	UploadDir       string
}

// Load reads the configuration from the environment. A .env file, when
// present, fills in variables the environment leaves unset; it must be
// loaded before the first Getenv below or its values never reach the config.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:      getEnv("SQLITE_PATH", "muntanyers.db"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:       getEnv("JWT_SECRET", "clau-secreta-muntanyers-2025"),
		UploadDir:       getEnv("UPLOAD_DIR", "public/uploads/avatars"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
