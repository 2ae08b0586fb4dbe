// Пакет config — загрузка и валидация конфигурации Movie API
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Движки хранения каталога.
const (
	// EngineMemory — in-memory снапшот, загружаемый из JSON-датасета.
	EngineMemory = "memory"
	// EnginePostgres — таблица movies в PostgreSQL (owned by importer).
	EnginePostgres = "postgres"
)

// Config содержит все параметры конфигурации Movie API.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- Поиск ---

	// Движок хранения каталога: memory (по умолчанию) или postgres
	StorageEngine string
	// Режим сопоставления токенов: ranked (по умолчанию) или strict
	SearchMode string

	// --- Датасет (движок memory) ---

	// URL JSON-снапшота каталога (пустой — только локальный файл)
	DatasetURL string
	// Путь к локальному JSON-файлу каталога
	DatasetPath string
	// Путь для кэширования скачанного снапшота (пустой — не кэшировать)
	DatasetCachePath string
	// Таймаут скачивания датасета (по умолчанию 60s)
	DatasetTimeout time.Duration
	// Интервал периодического обновления датасета (0 — отключено)
	DatasetRefreshInterval time.Duration
	// Путь к CA-сертификату для TLS при скачивании (пустой — стандартный пул)
	DatasetCACertPath string
	// Статический bearer-токен для скачивания датасета (пустой — без авторизации)
	DatasetAuthToken string

	// --- Кэш резолвинга UID ---

	// Максимальное количество записей в LRU-кэше (по умолчанию 1000)
	CacheSize int
	// TTL записи кэша (по умолчанию 5m)
	CacheTTL time.Duration

	// --- PostgreSQL (движок postgres) ---

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// PM_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("PM_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("PM_PORT: %w", err)
	}

	// PM_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("PM_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("PM_LOG_LEVEL: %w", err)
	}

	// PM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("PM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("PM_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_HTTP_READ_TIMEOUT: %w", err)
	}

	cfg.HTTPWriteTimeout, err = getEnvDuration("PM_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("PM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("PM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Поиск ---

	// PM_STORAGE_ENGINE — движок хранения (по умолчанию memory)
	cfg.StorageEngine = getEnvDefault("PM_STORAGE_ENGINE", EngineMemory)
	if cfg.StorageEngine != EngineMemory && cfg.StorageEngine != EnginePostgres {
		return nil, fmt.Errorf("PM_STORAGE_ENGINE: недопустимый движок %q, допустимые: %s, %s",
			cfg.StorageEngine, EngineMemory, EnginePostgres)
	}

	// PM_SEARCH_MODE — режим сопоставления (по умолчанию ranked)
	cfg.SearchMode = getEnvDefault("PM_SEARCH_MODE", "ranked")
	if cfg.SearchMode != "ranked" && cfg.SearchMode != "strict" {
		return nil, fmt.Errorf("PM_SEARCH_MODE: недопустимый режим %q, допустимые: ranked, strict", cfg.SearchMode)
	}

	// --- Датасет ---

	cfg.DatasetURL = getEnvDefault("PM_DATASET_URL", "")
	cfg.DatasetPath = getEnvDefault("PM_DATASET_PATH", "")
	cfg.DatasetCachePath = getEnvDefault("PM_DATASET_CACHE_PATH", "")
	cfg.DatasetCACertPath = getEnvDefault("PM_DATASET_CA_CERT_PATH", "")
	cfg.DatasetAuthToken = getEnvDefault("PM_DATASET_AUTH_TOKEN", "")

	cfg.DatasetTimeout, err = getEnvDuration("PM_DATASET_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_DATASET_TIMEOUT: %w", err)
	}

	cfg.DatasetRefreshInterval, err = getEnvDuration("PM_DATASET_REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, fmt.Errorf("PM_DATASET_REFRESH_INTERVAL: %w", err)
	}

	if cfg.StorageEngine == EngineMemory && cfg.DatasetURL == "" && cfg.DatasetPath == "" {
		return nil, fmt.Errorf("движок memory требует PM_DATASET_URL или PM_DATASET_PATH")
	}

	// --- Кэш ---

	cfg.CacheSize, err = getEnvInt("PM_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("PM_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("PM_CACHE_SIZE: значение должно быть >= 1")
	}

	cfg.CacheTTL, err = getEnvDuration("PM_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PM_CACHE_TTL: %w", err)
	}

	// --- PostgreSQL ---

	if cfg.StorageEngine == EnginePostgres {
		cfg.DBHost, err = getEnvRequired("PM_DB_HOST")
		if err != nil {
			return nil, err
		}
		cfg.DBPort, err = getEnvInt("PM_DB_PORT", 5432)
		if err != nil {
			return nil, fmt.Errorf("PM_DB_PORT: %w", err)
		}
		cfg.DBUser, err = getEnvRequired("PM_DB_USER")
		if err != nil {
			return nil, err
		}
		cfg.DBPassword, err = getEnvRequired("PM_DB_PASSWORD")
		if err != nil {
			return nil, err
		}
		cfg.DBName, err = getEnvRequired("PM_DB_NAME")
		if err != nil {
			return nil, err
		}
		cfg.DBSSLMode = getEnvDefault("PM_DB_SSLMODE", "disable")
	}

	return cfg, nil
}

// DatabaseDSN возвращает DSN подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
