package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Observ    ObservabilityConfig
	Inventory InventoryConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig selects the GORM dialector. Driver is one of
// "postgres", "sqlite" or "mysql".
type DatabaseConfig struct {
	Driver   string
	URL      string
	Path     string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	CategoryCacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	TopicStock  string
	ClientLabel string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	ServiceName    string
}

type InventoryConfig struct {
	DefaultPageSize   int
	LowStockThreshold int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, err := time.ParseDuration(getEnv("CATEGORY_CACHE_TTL", "5m"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}
	pageSize, err := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}
	lowStock, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "10"))
	if err != nil {
		lowStock = 10
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5001"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:      os.Getenv("DATABASE_URL"),
			Path:     getEnv("DB_PATH", "inventory.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		Redis: RedisConfig{
			Addr:             os.Getenv("REDIS_ADDR"),
			Password:         os.Getenv("REDIS_PASSWORD"),
			DB:               redisDB,
			CategoryCacheTTL: cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(os.Getenv("KAFKA_BROKERS")),
			TopicStock:  getEnv("KAFKA_TOPIC_STOCK_EVENTS", "inventory-stock-events"),
			ClientLabel: getEnv("KAFKA_CLIENT_ID", "inventory-api"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
			ServiceName:    getEnv("SERVICE_NAME", "inventory-api"),
		},
		Inventory: InventoryConfig{
			DefaultPageSize:   pageSize,
			LowStockThreshold: lowStock,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, db=%s", cfg.Server.Env, cfg.Server.Port, cfg.Database.Driver)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
