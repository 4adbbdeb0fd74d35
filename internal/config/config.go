package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Поддерживаемые хранилища снимка комментариев
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
	BackendRedis    = "redis"
)

// Config содержит конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Badger   BadgerConfig
	Redis    RedisConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level slog.Level
}

// StorageConfig определяет, где хранится снимок леса
type StorageConfig struct {
	Backend  string
	Key      string
	SeedDemo bool
}

// DatabaseConfig содержит настройки базы данных
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// BadgerConfig содержит настройки встроенного хранилища
type BadgerConfig struct {
	Path string
}

// RedisConfig содержит настройки Redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load загружает конфигурацию из переменных окружения
// Приоритет: переменные окружения системы > .env файл > значения по умолчанию
func Load() (*Config, error) {
	// Отсутствие .env файла не ошибка
	_ = godotenv.Load()

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Log: LogConfig{
			Level: level,
		},
		Storage: StorageConfig{
			Backend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
			Key:      getEnv("STORAGE_KEY", "comments"),
			SeedDemo: seed,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "commenttree"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Badger: BadgerConfig{
			Path: getEnv("BADGER_PATH", "./data/badger"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
	}

	switch cfg.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendBadger, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr возвращает адрес HTTP сервера
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
