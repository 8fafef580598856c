package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/config"
)

const sqlitePrefix = "sqlite://"

// Connect はDBに接続して *gorm.DB を返す。
// DSNが sqlite:// で始まる場合はSQLite（開発・テスト用）
func Connect(cfg config.Database, env config.Environment) (*gorm.DB, error) {
	//一意制約違反をgorm.ErrDuplicatedKeyに揃える
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel(env)), TranslateError: true}

	dsn := cfg.DSN()
	var (
		gdb *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, sqlitePrefix) {
		gdb, err = gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), gcfg)
	} else {
		gdb, err = gorm.Open(postgres.Open(dsn), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gdb, nil
}

func logLevel(env config.Environment) logger.LogLevel {
	switch env {
	case config.Development:
		return logger.Info
	case config.Testing:
		return logger.Silent
	default:
		return logger.Warn
	}
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
