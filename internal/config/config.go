// Package config reads client settings from the environment. Command-line
// flags layer on top of these values in main.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerURL       string
	Username        string
	Theme           string
	LogFile         string
	Debug           bool
	ShowLeaderboard bool
}

// FromEnv returns the configuration with environment overrides applied.
func FromEnv() *Config {
	return &Config{
		ServerURL:       getEnv("FOURINAROW_SERVER", "http://localhost:8080"),
		Username:        getEnv("FOURINAROW_USERNAME", ""),
		Theme:           getEnv("FOURINAROW_THEME", ""),
		LogFile:         getEnv("FOURINAROW_LOG_FILE", "fourinarow.log"),
		Debug:           getEnvBool("FOURINAROW_DEBUG", false),
		ShowLeaderboard: getEnvBool("FOURINAROW_LEADERBOARD", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
