package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	Env     string
	HTTP    HTTPConfig
	GRPC    GRPCConfig
	MySQL   MySQLConfig
	Session SessionConfig
	OTP     OTPConfig
	Mail    MailConfig
	Redis   RedisConfig
	Log     LogConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GRPCConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// OTPConfig controls verification code issuance and the non-production bypass.
type OTPConfig struct {
	CodeTTL         time.Duration
	AllowMock       bool
	MockCode        string
	RequestCooldown time.Duration
	RequestWindow   time.Duration
	RequestMax      int
	MaxAttempts     int
}

type MailConfig struct {
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPTimeout  time.Duration
	From         string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	cfg := &Config{
		Env: strings.ToLower(getEnv("APP_ENV", "development")),
		HTTP: HTTPConfig{
			Host:         getEnv("HTTP_HOST", "0.0.0.0"),
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  getSecondsEnv("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getSecondsEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		GRPC: GRPCConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			DSN: mysqlDSN,
		},
		Session: SessionConfig{
			Secret: jwtSecret,
			TTL:    getDurationEnv("SESSION_TTL", 7*24*time.Hour),
		},
		OTP: OTPConfig{
			CodeTTL:         getDurationEnv("CODE_TTL", 10*time.Minute),
			AllowMock:       getBoolEnv("ALLOW_MOCK_OTP", false),
			MockCode:        getEnv("MOCK_OTP_CODE", "123456"),
			RequestCooldown: getSecondsEnv("CODE_REQUEST_COOLDOWN", 30*time.Second),
			RequestWindow:   getDurationEnv("CODE_REQUEST_WINDOW", 15*time.Minute),
			RequestMax:      getIntEnv("CODE_REQUEST_MAX", 5),
			MaxAttempts:     getIntEnv("CODE_MAX_ATTEMPTS", 5),
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			SMTPHost:     os.Getenv("SMTP_HOST"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUser:     os.Getenv("SMTP_USER"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			SMTPTimeout:  getSecondsEnv("SMTP_TIMEOUT", 10*time.Second),
			From:         os.Getenv("SMTP_FROM"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.IsProduction() && cfg.OTP.AllowMock {
		return nil, errors.New("ALLOW_MOCK_OTP cannot be enabled when APP_ENV is production")
	}
	// The verification attempt counter lives in Redis.
	if cfg.IsProduction() && cfg.Redis.Addr == "" {
		return nil, errors.New("REDIS_ADDR environment variable is required when APP_ENV is production")
	}
	if cfg.OTP.MaxAttempts <= 0 {
		return nil, errors.New("CODE_MAX_ATTEMPTS must be greater than zero")
	}
	if len(cfg.OTP.MockCode) != 6 {
		return nil, errors.New("MOCK_OTP_CODE must be 6 characters long")
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return c.MySQL.DSN
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// MockOTPEnabled reports whether the fixed bypass code may be accepted.
// It is always false in production, whatever ALLOW_MOCK_OTP says.
func (c *Config) MockOTPEnabled() bool {
	return c.OTP.AllowMock && !c.IsProduction()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
