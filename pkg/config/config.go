package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	OpenRouter     OpenRouterConfig
	Recommendation RecommendationConfig
	Cron           CronConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	SiteURL     string
	CORSOrigins []string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// Enabled reports whether a redis host was configured. Without one the
// regeneration lock falls back to in-process single flight only.
func (r RedisConfig) Enabled() bool {
	return r.RedisHost != ""
}

type OpenRouterConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
	MaxAttempts    uint
}

type RecommendationConfig struct {
	MaxRecommendations int
	RecentWatchedLimit int
	CandidateLimit     int
	GenerationTimeout  time.Duration
	LockTTL            time.Duration
	LockWait           time.Duration
}

type CronConfig struct {
	Secret string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Watchwise API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			SiteURL:     getEnv("APP_SITE_URL", "http://localhost:3000"),
			CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "watchwise"),
			SSLMode:     getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		OpenRouter: OpenRouterConfig{
			BaseURL:        getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			APIKey:         getEnv("OPENROUTER_API_KEY", ""),
			Model:          getEnv("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct"),
			MaxTokens:      getEnvInt("OPENROUTER_MAX_TOKENS", 1000),
			Temperature:    getEnvFloat("OPENROUTER_TEMPERATURE", 0.8),
			Timeout:        getEnvDuration("OPENROUTER_TIMEOUT", 60*time.Second),
			RequestsPerSec: getEnvFloat("OPENROUTER_RPS", 1),
			Burst:          getEnvInt("OPENROUTER_BURST", 3),
			MaxAttempts:    uint(getEnvInt("OPENROUTER_MAX_ATTEMPTS", 2)),
		},
		Recommendation: RecommendationConfig{
			MaxRecommendations: getEnvInt("RECOMMENDATION_MAX", 10),
			RecentWatchedLimit: getEnvInt("RECOMMENDATION_RECENT_WATCHED", 10),
			CandidateLimit:     getEnvInt("RECOMMENDATION_CANDIDATES", 50),
			GenerationTimeout:  getEnvDuration("RECOMMENDATION_GENERATION_TIMEOUT", 90*time.Second),
			LockTTL:            getEnvDuration("RECOMMENDATION_LOCK_TTL", 2*time.Minute),
			LockWait:           getEnvDuration("RECOMMENDATION_LOCK_WAIT", 20*time.Second),
		},
		Cron: CronConfig{
			Secret: getEnv("CRON_SECRET", ""),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.OpenRouter.APIKey == "" {
		return nil, errors.New("missing openrouter api key")
	}

	if cfg.Recommendation.MaxRecommendations <= 0 {
		return nil, errors.New("recommendation max must be positive")
	}

	if cfg.OpenRouter.MaxAttempts == 0 {
		cfg.OpenRouter.MaxAttempts = 1
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return val
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return val
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return val
	}

	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}

	return out
}
