package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию клиента
type Config struct {
	APIBaseURL       string
	RequestTimeout   time.Duration
	APIRateLimit     float64
	APIRateBurst     int
	SessionFile      string
	AdminSessionFile string

	CurrencySuffix string
	Locale         string

	FlutterwavePublicKey string
	DepositRedirectURL   string
	CheckoutCurrency     string
	MinDeposit           float64
	MinWithdrawal        float64

	MaxPrincipal float64
	MaxRate      float64
	MaxDays      int

	PreviewAddr     string
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	stateDir := defaultStateDir()

	cfg := &Config{
		APIBaseURL:       getEnvString("API_BASE_URL", "http://localhost:5000"),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		APIRateLimit:     getEnvFloat("API_RATE_LIMIT", 5),
		APIRateBurst:     getEnvInt("API_RATE_BURST", 10),
		SessionFile:      getEnvString("SESSION_FILE", filepath.Join(stateDir, "session.json")),
		AdminSessionFile: getEnvString("ADMIN_SESSION_FILE", filepath.Join(stateDir, "admin_session.json")),

		CurrencySuffix: getEnvString("CURRENCY_SUFFIX", "FCFA"),
		Locale:         getEnvString("LOCALE", "fr"),

		FlutterwavePublicKey: getEnvString("FLUTTERWAVE_PUBLIC_KEY", ""),
		DepositRedirectURL:   getEnvString("DEPOSIT_REDIRECT_URL", ""),
		CheckoutCurrency:     getEnvString("CHECKOUT_CURRENCY", "XOF"),
		MinDeposit:           getEnvFloat("MIN_DEPOSIT", 1000),
		MinWithdrawal:        getEnvFloat("MIN_WITHDRAWAL", 2000),

		MaxPrincipal: getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxRate:      getEnvFloat("MAX_RATE", 100),
		MaxDays:      getEnvInt("MAX_DAYS", 3650),

		PreviewAddr:     getEnvString("PREVIEW_ADDR", "127.0.0.1:8000"),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "investctl"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".investctl"
	}
	return filepath.Join(home, ".investctl")
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
