package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	DBSSLMode     string
	AppPort       string
	AppEnv        string
	LogLevel      string
	GatewaySecret string
	AdminIDs      []int64
	SupportEmail  string
}

var (
	ErrMissingDBHost        = errors.New("environment variables not loaded properly: DB_HOST is empty")
	ErrMissingGatewaySecret = errors.New("environment variables not loaded properly: GATEWAY_SECRET is empty")
)

// LoadConfig reads the environment (and .env when present) and exits the
// process when the database settings are missing.
func LoadConfig() *Config {
	cfg, err := LoadConfigE()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func LoadConfigE() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		AppPort:       getEnv("APP_PORT", "8080"),
		AppEnv:        os.Getenv("APP_ENV"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		GatewaySecret: os.Getenv("GATEWAY_SECRET"),
		SupportEmail:  getEnv("SUPPORT_EMAIL", "support@ziggler.kz"),
	}

	ids, err := parseIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = ids

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}

	return cfg, nil
}

// LoadServerConfigE is LoadConfigE for the HTTP server, which also needs the
// key that gateway tokens are signed with. The migrate and seed tools do not.
func LoadServerConfigE() (*Config, error) {
	cfg, err := LoadConfigE()
	if err != nil {
		return nil, err
	}
	if cfg.GatewaySecret == "" {
		return nil, ErrMissingGatewaySecret
	}
	return cfg, nil
}

// IsAdmin reports whether the platform id is listed in ADMIN_IDS.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, errors.New("invalid ADMIN_IDS entry: " + p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
