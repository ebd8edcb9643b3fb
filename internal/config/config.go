package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, once per process. Missing files are not an error.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// LogLevelFromEnv reads LOG_LEVEL, defaulting to info when unset or invalid.
func LogLevelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
