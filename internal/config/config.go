package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Драйверы хранилища
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress        string        // Адрес и порт запуска сервиса
	StorageDriver     string        // postgres или memory
	DatabaseURI       string        // URI подключения к БД
	JWTSecret         string        // Секретный ключ для JWT
	JWTTokenTTL       time.Duration // Время жизни JWT токена
	AdminLogins       []string      // Логины с правами администратора
	MinPasswordLength int           // Минимальная длина пароля
	LogLevel          string        // Уровень логирования
	LogFile           string        // Файл логов с ротацией, пусто - только stdout

	// Леджер
	PointsTTL          time.Duration // Срок действия начисленных баллов, 0 - бессрочно
	LockTimeout        time.Duration // Ожидание блокировки пользователя
	MaxConflictRetries int           // Повторы при конфликте версий сводки

	// Фоновое сгорание баллов
	SweepInterval    time.Duration
	SweeperWorkers   int
	SweeperQueueSize int

	// Рейтинг
	LeaderboardSize            int
	LeaderboardRefreshInterval time.Duration

	// Redis для общего снимка рейтинга и очереди событий
	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

func defaults() *Config {
	return &Config{
		StorageDriver:              StoragePostgres,
		JWTTokenTTL:                24 * time.Hour,
		MinPasswordLength:          6,
		LogLevel:                   "info",
		PointsTTL:                  365 * 24 * time.Hour,
		LockTimeout:                5 * time.Second,
		MaxConflictRetries:         3,
		SweepInterval:              time.Hour,
		SweeperWorkers:             3,
		SweeperQueueSize:           100,
		LeaderboardSize:            100,
		LeaderboardRefreshInterval: 30 * time.Second,
	}
}

// Load загружает конфигурацию из переменных окружения и флагов командной строки
func Load() (*Config, error) {
	return LoadFrom(os.Args[1:])
}

// LoadFrom загружает конфигурацию из переданных аргументов и переменных окружения.
// Приоритет: env переменные > флаги > дефолтные значения
func LoadFrom(args []string) (*Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet("pointsledger", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: postgres or memory")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Переменные окружения имеют приоритет над флагами
	if v, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = v
	}
	if v, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = v
	}
	if v, ok := os.LookupEnv("STORAGE_DRIVER"); ok {
		cfg.StorageDriver = v
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	// JWT секрет (только из env, не из флагов для безопасности)
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	} else {
		cfg.JWTSecret = "default-secret-key-change-in-production"
	}
	if v, ok := os.LookupEnv("ADMIN_LOGINS"); ok {
		cfg.AdminLogins = splitList(v)
	}

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = v
	}

	// POINTS_TTL=0 отключает сгорание
	if v, ok := os.LookupEnv("POINTS_TTL"); ok {
		if ttl, err := time.ParseDuration(v); err == nil && ttl >= 0 {
			cfg.PointsTTL = ttl
		}
	}
	if v, ok := os.LookupEnv("MAX_CONFLICT_RETRIES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxConflictRetries = n
		}
	}
	envInt("MIN_PASSWORD_LENGTH", &cfg.MinPasswordLength)
	envDuration("LOCK_TIMEOUT", &cfg.LockTimeout)
	envDuration("EXPIRATION_SWEEP_INTERVAL", &cfg.SweepInterval)
	envInt("SWEEPER_WORKERS", &cfg.SweeperWorkers)
	envInt("SWEEPER_QUEUE_SIZE", &cfg.SweeperQueueSize)
	envInt("LEADERBOARD_SIZE", &cfg.LeaderboardSize)
	envDuration("LEADERBOARD_REFRESH_INTERVAL", &cfg.LeaderboardRefreshInterval)

	if v, ok := os.LookupEnv("REDIS_ADDRESS"); ok {
		cfg.RedisAddress = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		cfg.RedisPassword = v
	}
	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			cfg.RedisDB = db
		}
	}

	// Валидация обязательных параметров
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage driver %q (expected %s or %s)", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

// envInt перезаписывает dst положительным значением из env, некорректные значения игнорируются
func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
