package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"findmyrave/internal/shared/config"
	"findmyrave/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 5 * time.Second

// DB bundles the listings store and the optional Redis client
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client // nil when REDIS_ENABLED=false

	log *logger.Logger
}

// ComponentHealth is one backing store as reported by /health
type ComponentHealth struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency_ns"`
	Error   string        `json:"error,omitempty"`
}

// InitDB connects Postgres, migrates this service's tables and, when enabled, connects Redis.
func InitDB(cfg *config.Config) (*DB, error) {
	log := logger.GetDefault()

	pg, err := openPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := MigrateConstraints(pg); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	log.Info("PostgreSQL ready", slog.String("host", cfg.Database.Host), slog.String("database", cfg.Database.Name))

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		if rdb, err = openRedis(cfg.Redis); err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		log.Info("Redis ready", slog.String("addr", cfg.Redis.Addr), slog.Int("db", cfg.Redis.DB))
	}

	return New(pg, rdb, log), nil
}

// New wraps already opened connections
func New(pg *gorm.DB, rdb *redis.Client, log *logger.Logger) *DB {
	if log == nil {
		log = logger.GetDefault()
	}
	return &DB{PostgreSQL: pg, Redis: rdb, log: log}
}

func openPostgres(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func openRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: max(cfg.PoolSize/2, 1),
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// Close releases both connections and reports every failure
func (db *DB) Close() error {
	var errs []error
	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close PostgreSQL: %w", err))
			}
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close Redis: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	db.log.Info("Database connections closed")
	return nil
}

// Health pings each configured store. Redis is omitted when disabled.
func (db *DB) Health(ctx context.Context) []ComponentHealth {
	var report []ComponentHealth

	if db.PostgreSQL != nil {
		report = append(report, checkComponent(ctx, "postgres", func(ctx context.Context) error {
			sqlDB, err := db.PostgreSQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}))
	}
	if db.Redis != nil {
		report = append(report, checkComponent(ctx, "redis", func(ctx context.Context) error {
			return db.Redis.Ping(ctx).Err()
		}))
	}

	return report
}

// Healthy is true when every component in report answered
func Healthy(report []ComponentHealth) bool {
	for _, c := range report {
		if !c.Healthy {
			return false
		}
	}
	return true
}

func checkComponent(ctx context.Context, name string, ping func(context.Context) error) ComponentHealth {
	start := time.Now()
	err := ping(ctx)
	status := ComponentHealth{Name: name, Healthy: err == nil, Latency: time.Since(start)}
	if err != nil {
		status.Error = err.Error()
	}
	return status
}
