package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Port                  string
	AllowedOrigin         string
	DatabaseURL           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	GenieCacheTTLSeconds  int
	AuthSecret            string
	AccessTokenTTLMinutes int
	ManagerPIN            string
	GeminiAPIKey          string
	GeminiModel           string
	GeniePromptFile       string
	LogLevel              string
	LogPretty             bool
}

// Load reads the environment, after merging a local .env file when present.
func Load() Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := strconv.Atoi(getEnv("GENIE_CACHE_TTL_SECONDS", "600"))
	if err != nil || ttl < 1 {
		ttl = 600
	}
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	pretty, _ := strconv.ParseBool(getEnv("LOG_PRETTY", "false"))

	return Config{
		Port:                  getEnv("PORT", "8080"),
		AllowedOrigin:         getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		GenieCacheTTLSeconds:  ttl,
		AuthSecret:            strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		AccessTokenTTLMinutes: tokenTTL,
		ManagerPIN:            strings.TrimSpace(os.Getenv("MANAGER_PIN")),
		GeminiAPIKey:          strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeniePromptFile:       os.Getenv("GENIE_PROMPT_FILE"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogPretty:             pretty,
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PromptConfig tunes the recommendation prompt. Empty fields keep the
// built-in defaults.
type PromptConfig struct {
	SystemInstruction string  `yaml:"system_instruction"`
	Language          string  `yaml:"language"`
	Temperature       float32 `yaml:"temperature"`
}

// LoadPromptConfig reads a YAML prompt config. An empty path yields the zero value.
func LoadPromptConfig(path string) (PromptConfig, error) {
	var cfg PromptConfig
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read prompt config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse prompt config: %w", err)
	}
	return cfg, nil
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
