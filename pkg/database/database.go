package database

import (
	"fmt"

	"github.com/questx-lab/rewards/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the database of the configured driver.
func Open(cfg config.DatabaseConfigs, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "mysql", "":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(), // data source name
			DefaultStringSize:         256,                    // default size for string fields
			DisableDatetimePrecision:  true,                   // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,                   // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,                   // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false,                  // auto configure based on currently MySQL version
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %s", cfg.Driver)
	}

	logMode := gormlogger.Silent
	if verbose {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logMode)})
	if err != nil {
		return nil, err
	}

	// sqlite allows only one writer at a time.
	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}
