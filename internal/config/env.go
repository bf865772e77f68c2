package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	ClickPesaAPIKey   string
	ClickPesaClientID string
	ClickPesaBaseURL  string
}

// LoadEnv reads configuration from the environment. A .env file is loaded
// when present; missing file is not an error so containers can inject vars
// directly.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "tiketi"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		ClickPesaAPIKey:   getenv("CLICKPESA_API_KEY", ""),
		ClickPesaClientID: getenv("CLICKPESA_CLIENT_ID", ""),
		ClickPesaBaseURL:  getenv("CLICKPESA_ENDPOINT", "https://api.clickpesa.com/third-parties"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
