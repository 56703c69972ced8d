package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the planner service. It is built once at
// startup and passed by reference into the pipeline and API constructors;
// nothing below this layer reads the environment.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Tools   ToolsConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	GinMode        string
	AllowedOrigins string
}

// BackendConfig describes the text-generation backends. If APIKey is set the
// hosted endpoint is preferred; otherwise the local endpoint is probed with
// each fallback model in order.
type BackendConfig struct {
	APIKey         string
	APIBase        string
	Model          string
	LocalBase      string
	FallbackModels []string
	Timeout        time.Duration
}

// ToolsConfig holds timeouts and limits for the leaf tools
type ToolsConfig struct {
	RequestTimeout time.Duration
	UserAgent      string
	MaxPageSizeMB  int
}

// ExportConfig holds markdown export configuration
type ExportConfig struct {
	OutputDir string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Backend: BackendConfig{
			APIKey:         firstEnv("OPENAI_API_KEY", "OPENAI_APIKEY", "OPENAI"),
			APIBase:        getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			LocalBase:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
			FallbackModels: splitList(getEnv("FALLBACK_MODELS", "llama3.2:3b,llama3.1:8b,mistral:7b")),
			Timeout:        time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 300)) * time.Second,
		},
		Tools: ToolsConfig{
			RequestTimeout: time.Duration(getEnvAsInt("TOOL_TIMEOUT_SECONDS", 10)) * time.Second,
			UserAgent:      getEnv("TOOL_USER_AGENT", defaultUserAgent),
			MaxPageSizeMB:  getEnvAsInt("TOOL_MAX_PAGE_SIZE_MB", 5),
		},
		Export: ExportConfig{
			OutputDir: getEnv("EXPORT_DIR", "output"),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[Config] Warning: invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
