package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/yukikurage/document-management-api/internal/config"
	"github.com/yukikurage/document-management-api/internal/logging"
	"github.com/yukikurage/document-management-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector picks the gorm driver for the configured database.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "mysql":
		tls := "false"
		if cfg.DBSSL {
			tls = "true"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
			tls,
		)
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		sslMode := "disable"
		if cfg.DBSSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			sslMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func Connect(cfg *config.Config, log *slog.Logger) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logging.GormLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Info("database connection established", slog.String("driver", cfg.DBDriver))
	return nil
}

// Models lists every gorm model owned by the application, except the
// taxonomy tables which share one struct and are migrated per table.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Folder{},
		&models.Document{},
		&models.ActivityLog{},
	}
}

func Migrate(log *slog.Logger) error {
	log.Info("running database migrations")
	if err := AutoMigrate(DB); err != nil {
		return err
	}
	if err := AddIndexes(DB, log); err != nil {
		return err
	}
	log.Info("database migrations completed")
	return nil
}

// AutoMigrate creates or updates the schema on db.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, kind := range []models.TaxonomyKind{models.TaxonomyDocumentType, models.TaxonomyItJobType} {
		if err := db.Table(kind.Table()).AutoMigrate(&models.TaxonomyEntry{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", kind.Table(), err)
		}
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
