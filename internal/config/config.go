package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port             string
	DBDriver         string
	DBConn           string
	LogLevel         string
	JWTSecret        string
	TokenTTL         time.Duration
	RatesURL         string
	RatesMargin      float64
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
	PriceRefreshSpec string
	RandomSeed       uint64
	CORSOrigins      []string
}

// NewConfig loads configuration from the environment, after an optional .env file
func NewConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", envFile, err)
	}

	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_CONN", "host=localhost port=5436 user=test password=test dbname=openbanqr sslmode=disable")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("RATES_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx")
	v.SetDefault("RATES_MARGIN", 2.0)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SENDER_EMAIL", "noreply@openbanqr.local")
	v.SetDefault("PRICE_REFRESH_SPEC", "@every 15m")
	v.SetDefault("RANDOM_SEED", 0)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:             v.GetString("PORT"),
		DBDriver:         strings.ToLower(v.GetString("DB_DRIVER")),
		DBConn:           v.GetString("DB_CONN"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		RatesURL:         v.GetString("RATES_URL"),
		RatesMargin:      v.GetFloat64("RATES_MARGIN"),
		SMTPHost:         v.GetString("SMTP_HOST"),
		SMTPPort:         v.GetString("SMTP_PORT"),
		SMTPUsername:     v.GetString("SMTP_USERNAME"),
		SMTPPassword:     v.GetString("SMTP_PASSWORD"),
		SenderEmail:      v.GetString("SENDER_EMAIL"),
		PriceRefreshSpec: v.GetString("PRICE_REFRESH_SPEC"),
		RandomSeed:       v.GetUint64("RANDOM_SEED"),
	}
	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

// EmailEnabled reports whether SMTP notifications are configured
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}
