package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/internal/config"
	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DBDriver == config.DriverSQLite {
		return sqlite.Open(cfg.DSN())
	}
	return postgres.Open(cfg.DSN())
}

// Open connects once and configures the pool.
func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.GinMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector(cfg), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// ConnectWithRetry keeps calling Open until it succeeds or the configured
// number of attempts is used up.
func ConnectWithRetry(cfg *config.Config) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= cfg.DBConnectTries; attempt++ {
		var db *gorm.DB
		db, err = Open(cfg)
		if err == nil {
			log.Info().
				Str("driver", cfg.DBDriver).
				Int("attempt", attempt).
				Msg("database connected")
			return db, nil
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", cfg.DBConnectTries).
			Msg("db not ready")

		if attempt < cfg.DBConnectTries {
			time.Sleep(cfg.DBConnectBackoff)
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBConnectTries, err)
}

// Migrate creates or updates the authors and books tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Author{}, &model.Book{})
}
