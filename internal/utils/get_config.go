package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppEnv   string `yaml:"APP_ENV"`
	AppPort  string `yaml:"APP_PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`
	LogFile  string `yaml:"LOG_FILE"`

	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`

	// Database configuration
	DBUser           string `yaml:"DB_USER"`
	DBName           string `yaml:"DB_NAME"`
	DBPassword       string `yaml:"DB_PASSWORD"`
	DBPort           string `yaml:"DB_PORT"`
	DBHost           string `yaml:"DB_HOST"`
	DBSimpleProtocol bool   `yaml:"DB_SIMPLE_PROTOCOL"`
	DBMaxOpenConns   int    `yaml:"DB_MAX_OPEN_CONNS"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`
	JWTTTL    int    `yaml:"JWT_TOKEN_TTL_HOURS"`

	// Redis
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"REDIS_DB"`
	RedisTLS      bool   `yaml:"REDIS_TLS"`

	// Metrics
	MetricsNamespace string `yaml:"METRICS_NAMESPACE"`

	// Loyalty policy
	CoinsDivisor      string `yaml:"COINS_DIVISOR"`
	MinPurchaseAmount string `yaml:"MIN_PURCHASE_AMOUNT"`
	RateLimitMax      int    `yaml:"RATE_LIMIT_MAX"`
}

var (
	config     Config
	configOnce sync.Once
)

var defaults = map[string]string{
	"APP_ENV":             "development",
	"APP_PORT":            "8080",
	"LOG_LEVEL":           "info",
	"JWT_ISSUER":          "COIN-LOYALTY",
	"METRICS_NAMESPACE":   "loyalty",
	"COINS_DIVISOR":       "10",
	"MIN_PURCHASE_AMOUNT": "0",
	"RATE_LIMIT_MAX":      "20",
	"CORS_ALLOW_ORIGINS":  "*",
	"JWT_TOKEN_TTL_HOURS": "12",
	"DB_MAX_OPEN_CONNS":   "20",
	"REDIS_DB":            "0",
}

// LoadConfig reads config.yaml once. Environment variables (and a .env file) take precedence.
func LoadConfig() {
	configOnce.Do(func() {
		_ = godotenv.Load()

		file, err := os.ReadFile(configPath())
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
			return
		}

		if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
			return
		}
	})
}

func configPath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func getIntString(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

// GetConfig resolves a key from the environment, then config.yaml, then built-in defaults.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fromFile(key); v != "" {
		return v
	}
	return defaults[key]
}

// GetConfigInt is GetConfig parsed as an int, falling back to fallback when unset or malformed.
func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetConfigBool(key string) bool {
	v, err := strconv.ParseBool(GetConfig(key))
	return err == nil && v
}

func fromFile(key string) string {
	switch key {
	case "APP_ENV":
		return config.AppEnv
	case "APP_PORT":
		return config.AppPort
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FILE":
		return config.LogFile
	case "CORS_ALLOW_ORIGINS":
		return config.CORSAllowOrigins
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SIMPLE_PROTOCOL":
		if !config.DBSimpleProtocol {
			return ""
		}
		return getBoolString(config.DBSimpleProtocol)
	case "DB_MAX_OPEN_CONNS":
		return getIntString(config.DBMaxOpenConns)
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "JWT_TOKEN_TTL_HOURS":
		return getIntString(config.JWTTTL)
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return getIntString(config.RedisDB)
	case "REDIS_TLS":
		if !config.RedisTLS {
			return ""
		}
		return getBoolString(config.RedisTLS)
	case "METRICS_NAMESPACE":
		return config.MetricsNamespace
	case "COINS_DIVISOR":
		return config.CoinsDivisor
	case "MIN_PURCHASE_AMOUNT":
		return config.MinPurchaseAmount
	case "RATE_LIMIT_MAX":
		return getIntString(config.RateLimitMax)
	default:
		return ""
	}
}
