package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	OCR    OCRConfig
	Parse  ParseConfig
	Stats  StatsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
	UploadDir      string
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Pdftotext      string
	Pdftoppm       string
	Tesseract      string
	TesseractLang  string
	DPI            int
	MaxPages       int
	MinTextDensity int // non-whitespace chars per page below which a PDF is treated as scanned
	Timeout        time.Duration
}

// ParseConfig holds field-parser tunables
type ParseConfig struct {
	HeaderWindow   int      // lines scanned for the supplier block
	DateFormats    []string // accepted layouts, tried in order
	PreviewMaxLen  int      // raw_text_preview truncation, in runes
	AbsTolerance   string   // absolute reconciliation tolerance, decimal string
	RelTolerance   string   // relative reconciliation tolerance, decimal string
}

// StatsConfig holds the processing-counter store configuration
type StatsConfig struct {
	Path string // sqlite file; empty disables persistence
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("HTTP_ADDR", ":8080"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 20<<20)),
			UploadDir:      getEnv("UPLOAD_DIR", ""),
		},
		OCR: OCRConfig{
			Pdftotext:      getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:       getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:      getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang:  getEnv("TESSERACT_LANG", "eng"),
			DPI:            getEnvAsInt("OCR_DPI", 300),
			MaxPages:       getEnvAsInt("OCR_MAX_PAGES", 0),
			MinTextDensity: getEnvAsInt("MIN_TEXT_DENSITY", 64),
			Timeout:        getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
		},
		Parse: ParseConfig{
			HeaderWindow:  getEnvAsInt("HEADER_WINDOW", 12),
			DateFormats:   getEnvAsList("DATE_FORMATS", nil),
			PreviewMaxLen: getEnvAsInt("PREVIEW_MAX_LEN", 1200),
			AbsTolerance:  getEnv("RECONCILE_ABS_TOLERANCE", "0.05"),
			RelTolerance:  getEnv("RECONCILE_REL_TOLERANCE", "0.01"),
		},
		Stats: StatsConfig{
			Path: getEnv("STATS_DB_PATH", "stats.db"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.OCR.MinTextDensity < 0 {
		return NewAppError("CONFIG_ERROR", "MIN_TEXT_DENSITY must be >= 0", ErrInvalidInput)
	}
	if c.Parse.HeaderWindow <= 0 {
		return NewAppError("CONFIG_ERROR", "HEADER_WINDOW must be positive", ErrInvalidInput)
	}
	return nil
}
