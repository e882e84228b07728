package config

import (
	"errors"  // Validation errors
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // Origin list parsing
	"time"    // Token lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Supported values for DB_DRIVER
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// minSecretLength is the smallest HS256 key accepted at startup
const minSecretLength = 32

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBDriver       string        // mysql, postgres or memory
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT signing key, never logged
	JWTTTL         time.Duration // Token lifetime
	RedisAddr      string        // Redis server address, empty disables caching
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	RabbitURL      string        // RabbitMQ URL, empty disables publishing
	AllowedOrigins []string      // CORS allow-list
	BcryptCost     int           // Password hashing cost
	LogLevel       string        // logrus level name
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),                                       // Application port
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),                // Database driver
		DBUser:         os.Getenv("DB_USER"),                                             // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                                         // Database password
		DBHost:         getEnv("DB_HOST", "localhost"),                                   // Database host
		DBPort:         os.Getenv("DB_PORT"),                                             // Database port
		DBName:         os.Getenv("DB_NAME"),                                             // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),                                          // JWT secret key
		JWTTTL:         parseDuration(os.Getenv("JWT_TTL"), 5*time.Hour),                 // Token lifetime
		RedisAddr:      os.Getenv("REDIS_ADDR"),                                          // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                                          // Redis password
		RedisDB:        redisDB,                                                          // Redis database number
		RabbitURL:      os.Getenv("RABBIT_URL"),                                          // RabbitMQ URL
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")), // CORS origins
		BcryptCost:     parseInt(os.Getenv("BCRYPT_COST"), 12),                           // bcrypt cost
		LogLevel:       getEnv("LOG_LEVEL", "info"),                                      // Log level
		IsProd:         os.Getenv("IS_PROD") == "true",                                   // Is production environment
	}
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range", c.BcryptCost)
	}
	if len(c.AllowedOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	return nil
}

// DSN builds the data source name for the configured SQL driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		port := c.DBPort
		if port == "" {
			port = "5432" // Default postgres port
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, port, c.DBUser, c.DBPassword, c.DBName)
	}
	port := c.DBPort
	if port == "" {
		port = "3306" // Default mysql port
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0 // Rejected by Validate
	}
	return d
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// splitList turns "a, b,,c" into [a b c]
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
