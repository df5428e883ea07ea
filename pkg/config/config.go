// Файл: config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type SheetsAPIConfig struct {
	// URL — адрес удаленного табличного API (Google Apps Script endpoint).
	URL string
}

type JWTConfig struct {
	SecretKey       string
	SessionTokenTTL time.Duration
}

type DashboardConfig struct {
	PageSize       int
	DebounceDelay  time.Duration
	ToastTTL       time.Duration
	SessionIdleTTL time.Duration
	DefaultSheet   string
}

type Config struct {
	Server    ServerConfig
	SheetsAPI SheetsAPIConfig
	JWT       JWTConfig
	Dashboard DashboardConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		SheetsAPI: SheetsAPIConfig{
			URL: getEnv("SHEETS_API_URL", ""),
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "9A4D2AD385B2BAA8DC78F558B548F"),
			SessionTokenTTL: time.Hour * 24,
		},
		Dashboard: DashboardConfig{
			PageSize:       getEnvInt("DASHBOARD_PAGE_SIZE", 12),
			DebounceDelay:  time.Millisecond * 300,
			ToastTTL:       time.Second * 4,
			SessionIdleTTL: time.Minute * 30,
			DefaultSheet:   getEnv("DASHBOARD_DEFAULT_SHEET", "Overall"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
