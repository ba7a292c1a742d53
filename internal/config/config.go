package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // postgres://... or sqlite:<path>
	TablePrefix string
	DBMaxConns  int // postgres pool size, ignored for sqlite
	CORSOrigins string
	// Storage
	UploadDir     string   // Absolute upload root
	LegacyPDFDirs []string // Extra roots probed for {id}.pdf files, read-only
	MaxUploadMB   int64
	// Tagging
	DefaultMaxTags int
	// Logging
	LogDir string
	Debug  bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite:./pdfshelf.db"),
		TablePrefix:    getTablePrefix(env),
		DBMaxConns:     getEnvInt("DB_MAX_CONNS", 10),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		UploadDir:      absPath(getEnv("UPLOAD_DIR", "./uploads")),
		LegacyPDFDirs:  splitList(getEnv("LEGACY_PDF_DIRS", "")),
		MaxUploadMB:    int64(getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB)),
		DefaultMaxTags: getEnvInt("DEFAULT_MAX_TAGS", DefaultMaxTags),
		LogDir:         getEnv("LOG_DIR", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// IsSQLite reports whether DatabaseURL selects the embedded SQLite store
func (c *Config) IsSQLite() bool {
	return strings.HasPrefix(c.DatabaseURL, "sqlite:") || strings.HasPrefix(c.DatabaseURL, "file:")
}

// SQLitePath returns the database file for a sqlite: URL
func (c *Config) SQLitePath() string {
	path := strings.TrimPrefix(c.DatabaseURL, "sqlite:")
	return strings.TrimPrefix(path, "//")
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return ""
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, absPath(part))
		}
	}
	return result
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
