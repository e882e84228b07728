package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DBDriver:       DriverMySQL,
		JWTSecret:      strings.Repeat("k", 32),
		JWTTTL:         5 * time.Hour,
		BcryptCost:     12,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 5*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	short := validConfig()
	short.JWTSecret = "too-short"
	assert.Error(t, short.Validate())

	badTTL := validConfig()
	badTTL.JWTTTL = 0
	assert.Error(t, badTTL.Validate())

	badDriver := validConfig()
	badDriver.DBDriver = "oracle"
	assert.Error(t, badDriver.Validate())

	badCost := validConfig()
	badCost.BcryptCost = 50
	assert.Error(t, badCost.Validate())

	noOrigins := validConfig()
	noOrigins.AllowedOrigins = nil
	assert.Error(t, noOrigins.Validate())
}

func TestValidate_DoesNotEchoSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = "secret-value"
	err := cfg.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-value")
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName = "u", "p", "db", "eventwave"
	assert.Equal(t, "u:p@tcp(db:3306)/eventwave?parseTime=true", cfg.DSN())

	cfg.DBDriver = DriverPostgres
	cfg.DBPort = "5433"
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=eventwave sslmode=disable", cfg.DSN())
}
