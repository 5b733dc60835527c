package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Generator backends selectable through GENERATOR_BACKEND.
const (
	BackendMock   = "mock"
	BackendGemini = "gemini"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string

	// RedisURL enables the shared rate-limit store. Empty keeps limits in process.
	RedisURL           string
	RateLimitPerMinute int

	GeneratorBackend      string
	GeminiAPIKey          string
	GeminiModel           string
	GenerationTimeout     time.Duration
	GenerationMaxAttempts int
	MockLessonDelay       time.Duration
	MockCertificateDelay  time.Duration
	VisualAidURL          string

	DefaultLanguage string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", "debug"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "pretty"),
		AllowedOrigins:        parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		RedisURL:              getEnv("REDIS_URL", ""),
		RateLimitPerMinute:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		GeneratorBackend:      strings.ToLower(getEnv("GENERATOR_BACKEND", BackendMock)),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GenerationTimeout:     time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 30)) * time.Second,
		GenerationMaxAttempts: getEnvInt("GENERATION_MAX_ATTEMPTS", 1),
		MockLessonDelay:       time.Duration(getEnvInt("MOCK_LESSON_DELAY_MS", 1500)) * time.Millisecond,
		MockCertificateDelay:  time.Duration(getEnvInt("MOCK_CERTIFICATE_DELAY_MS", 500)) * time.Millisecond,
		VisualAidURL:          getEnv("VISUAL_AID_URL", "https://picsum.photos/600/400"),
		DefaultLanguage:       getEnv("DEFAULT_LANGUAGE", "en"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
