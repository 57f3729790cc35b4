package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	DBDriver        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPath          string
	RedisHost       string
	RedisPort       string
	SessionSecret   string
	JWTSecret       string
	JWTIssuer       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	GinMode         string
	ServerPort      int
	LogLevel        string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when APP_ENV is "development"; variables
// already present in the environment win.
func Load() *Config {
	if os.Getenv("APP_ENV") == "development" {
		_ = godotenv.Load()
	}

	return &Config{
		AppEnv:          getEnv("APP_ENV", "production"),
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "taskuser"),
		DBPassword:      getEnv("DB_PASSWORD", "taskpassword"),
		DBName:          getEnv("DB_NAME", "task_reports"),
		DBPath:          getEnv("DB_PATH", "task_reports.db"),
		RedisHost:       getEnv("REDIS_HOST", ""),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:       getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "task-report-api"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
		GinMode:         getEnv("GIN_MODE", "debug"),
		ServerPort:      getEnvInt("SERVER_PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// IsProduction reports whether cookies should be marked secure.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
