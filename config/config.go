package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port string

	DBDriver      string // "mysql" or "sqlite"
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string // SQLite database file, used when DBDriver is "sqlite"
	DBAutoMigrate bool   // create missing tables on startup
	DBLogLevel    string // gorm logger level: silent, error, warn, info

	LogLevel string
	LogFile  string // empty disables file output

	// Redis genre cache
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	EnvFile string
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
// godotenv.Load never overrides variables that are already set.
func Load() *Config {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file loaded (%v), relying on existing environment variables and defaults.", envFile, err)
	}

	return &Config{
		Port:          getEnv("PORT", "8000"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    os.Getenv("DB_PASSWORD"), // no hardcoded default for passwords
		DBName:        getEnv("DB_NAME", "chinook"),
		DBPath:        getEnv("DB_PATH", "chinook.db"),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		DBLogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
		EnvFile:       envFile,
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
