package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Workbooks
	SpendingWorkbookPath string
	IncomeWorkbookPath   string

	// Up Bank transaction service
	UpbankURL       string
	UpbankAccountID string
	UpbankTimeout   time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("ENV", "development"),

		SpendingWorkbookPath: getEnv("EXCEL_PATH_SPENDING", "spending.xlsx"),
		IncomeWorkbookPath:   getEnv("EXCEL_PATH_INCOME", "income.xlsx"),

		UpbankURL:       getEnv("UPBANK_URL", "http://localhost:8080"),
		UpbankAccountID: getEnv("UPBANK_ACCOUNT_ID", ""),
	}

	// Parse transaction service timeout
	timeoutStr := getEnv("UPBANK_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid UPBANK_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	config.UpbankTimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
