package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

// Env holds process-level configuration read from the environment.
type Env struct {
	// Required for the confirmation fallback classifier
	AnthropicAPIKey string

	// Optional with defaults
	DBPath            string
	ShopConfigPath    string
	ClaudeModel       string
	ClaudeTemperature float64
	UsageLimitDollars float64

	// Optional integrations
	ResendAPIKey          string
	NotifyFromAddress     string
	NotifyToAddress       string
	GoogleCredentialsFile string
	GoogleTokenFile       string
	GoogleCalendarID      string
	TelegramToken         string
	TelegramChatID        int64
}

// LoadFromEnv reads configuration from the environment with defaults.
func LoadFromEnv() *Env {
	return &Env{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		DBPath:            getEnvOrDefault("FRONTDESK_DB_PATH", "./frontdesk.db"),
		ShopConfigPath:    getEnvOrDefault("FRONTDESK_SHOP_CONFIG", "./config/shop.json"),
		ClaudeModel:       getEnvOrDefault("FRONTDESK_CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		ClaudeTemperature: getEnvAsFloatOrDefault("FRONTDESK_CLAUDE_TEMPERATURE", 0.1),
		UsageLimitDollars: getEnvAsFloatOrDefault("FRONTDESK_USAGE_LIMIT_DOLLARS", 4.50),

		ResendAPIKey:          os.Getenv("RESEND_API_KEY"),
		NotifyFromAddress:     os.Getenv("FRONTDESK_NOTIFY_FROM"),
		NotifyToAddress:       os.Getenv("FRONTDESK_NOTIFY_TO"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		GoogleCalendarID:      getEnvOrDefault("FRONTDESK_GOOGLE_CALENDAR_ID", "primary"),
		TelegramToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:        getEnvAsInt64OrDefault("TELEGRAM_CHAT_ID", 0),
	}
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
