package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"apartment-prices/utils"
)

// DefaultPropertyURLs are scraped when PROPERTY_URLS is not set.
var DefaultPropertyURLs = []string{
	"https://www.apartments.com/cityscape-residences-phoenix-az/4zbhsej/",
	"https://www.apartments.com/broadstone-roosevelt-row-phoenix-az/1jrhhy4/",
}

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PropertyURLs []string
	HistoryPath  string
	SchemaPath   string

	FetchMode    string
	FetchTimeout time.Duration
	UserAgent    string
	MinDelaySec  int
	MaxDelaySec  int
	MaxRetries   int
	ChromeBin    string

	HistoryDBDriver string
	HistoryDBDSN    string

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PropertyURLs: getEnvList("PROPERTY_URLS", DefaultPropertyURLs),
		HistoryPath:  getEnv("HISTORY_PATH", "./apartments_data.csv"),
		SchemaPath:   getEnv("SCHEMA_PATH", ""),

		FetchMode:    strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_SEC", 30)) * time.Second,
		UserAgent:    getEnv("USER_AGENT", ""),
		MinDelaySec:  getEnvInt("MIN_DELAY_SEC", 1),
		MaxDelaySec:  getEnvInt("MAX_DELAY_SEC", 3),
		MaxRetries:   getEnvInt("MAX_RETRIES", 1),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		HistoryDBDriver: strings.ToLower(getEnv("HISTORY_DB_DRIVER", "")),
		HistoryDBDSN:    getEnv("HISTORY_DB_DSN", ""),

		Debug: getEnvBool("LOG_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks and repeats.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return append([]string(nil), fallback...)
	}
	set := utils.NewURLSet()
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			set.Add(part)
		}
	}
	return set.List()
}
