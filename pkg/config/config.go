package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process-level configuration. The solver core itself never
// touches this type directly; only cmd/ and the storage/cache adapters it
// wires together read from it.
type Config struct {
	Env string

	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Solver   SolverConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// SolverConfig governs the search itself: reproducibility, exhaustiveness,
// and the deadline of one command run, which every department solved in
// that run shares.
type SolverConfig struct {
	Seed             int64
	Shuffle          bool
	Exhaustive       bool
	Deadline         time.Duration
	SnapshotCacheTTL time.Duration
	BatchWorkers     int
	UseSQLStore      bool
	UseSnapshotCache bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Solver = SolverConfig{
		Seed:             v.GetInt64("SOLVER_SEED"),
		Shuffle:          v.GetBool("SOLVER_SHUFFLE"),
		Exhaustive:       v.GetBool("SOLVER_EXHAUSTIVE"),
		Deadline:         parseDuration(v.GetString("SOLVER_DEADLINE"), 10*time.Second),
		SnapshotCacheTTL: parseDuration(v.GetString("SOLVER_SNAPSHOT_CACHE_TTL"), 5*time.Minute),
		BatchWorkers:     v.GetInt("SOLVER_BATCH_WORKERS"),
		UseSQLStore:      v.GetBool("SOLVER_USE_SQL_STORE"),
		UseSnapshotCache: v.GetBool("SOLVER_USE_SNAPSHOT_CACHE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable_solver")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SOLVER_SEED", 1)
	v.SetDefault("SOLVER_SHUFFLE", false)
	v.SetDefault("SOLVER_EXHAUSTIVE", false)
	v.SetDefault("SOLVER_DEADLINE", "10s")
	v.SetDefault("SOLVER_SNAPSHOT_CACHE_TTL", "5m")
	v.SetDefault("SOLVER_BATCH_WORKERS", 4)
	v.SetDefault("SOLVER_USE_SQL_STORE", false)
	v.SetDefault("SOLVER_USE_SNAPSHOT_CACHE", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
