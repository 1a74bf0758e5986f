package database

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	configs "github.com/sportsconnect/api/config"
	"github.com/sportsconnect/api/internal/model"
	"github.com/sportsconnect/api/pkg/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

// InitDatabase opens the Postgres connection, configures the pool and runs
// schema migration. Fatal on failure: the service cannot serve without it.
func InitDatabase(config *configs.Config) *gorm.DB {
	var err error
	once.Do(func() {
		startTime := time.Now()

		var dbLogger gormLogger.Interface
		switch config.App.Environment {
		case "production":
			dbLogger = gormLogger.Default.LogMode(gormLogger.Silent)
		case "staging":
			dbLogger = gormLogger.Default.LogMode(gormLogger.Warn)
		default:
			dbLogger = gormLogger.Default.LogMode(gormLogger.Info)
		}

		gormConfig := &gorm.Config{
			Logger:      dbLogger,
			PrepareStmt: true,
			// Unique-index violations must surface as gorm.ErrDuplicatedKey
			// so the repository can map them to the duplicate-user error.
			TranslateError: true,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		}

		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN: config.DatabaseConnectionString(),
		}), gormConfig)
		if err != nil {
			logger.GetLogger().Fatal("Failed to connect to database",
				zap.Error(err),
				zap.String("host", config.Database.Host),
				zap.Int("port", config.Database.Port),
				zap.String("database", config.Database.Name),
			)
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.GetLogger().Fatal("Failed to get DB instance",
				zap.Error(err),
			)
		}

		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(15 * time.Minute)

		if err := sqlDB.Ping(); err != nil {
			logger.GetLogger().Fatal("Failed to ping database",
				zap.Error(err),
			)
		}

		if err := db.AutoMigrate(&model.User{}); err != nil {
			logger.GetLogger().Fatal("Failed to auto-migrate database",
				zap.Error(err),
			)
		}

		logger.GetLogger().Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.Int("port", config.Database.Port),
			zap.String("database", config.Database.Name),
			zap.Duration("connection_time", time.Since(startTime)),
		)
	})

	return db
}

// GetDB returns the database connection.
func GetDB() *gorm.DB {
	if db == nil {
		logger.GetLogger().Fatal("Database not initialized. Call InitDatabase first.")
	}
	return db
}

// CloseDB closes the database connection.
func CloseDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.GetLogger().Error("Failed to get database instance for closing",
			zap.Error(err),
		)
		return err
	}
	if err := sqlDB.Close(); err != nil {
		logger.GetLogger().Error("Failed to close database connection",
			zap.Error(err),
		)
		return err
	}
	logger.GetLogger().Info("Database connection closed")
	return nil
}
