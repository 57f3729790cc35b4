package database

import (
	"fmt"
	stdlog "log"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/task-report-api/internal/config"
	"github.com/yukikurage/task-report-api/internal/logger"
	"github.com/yukikurage/task-report-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector selects the gorm driver configured by DB_DRIVER.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		return mysql.Open(MySQLDSN(cfg)), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// MySQLDSN builds the mysql connection string. Due dates are UTC midnights,
// so the driver must write times in UTC or DATE columns lose a day west of
// Greenwich.
func MySQLDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)
}

// Options are the gorm settings shared by the server and the tests. Driver
// errors are translated so that unique violations surface as
// gorm.ErrDuplicatedKey.
func Options(level gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         GormLogger(level),
		TranslateError: true,
	}
}

// GormLogger writes gorm's slow query and error lines through the global
// zerolog logger.
func GormLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(stdlog.New(log.Logger, "", 0), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func Connect(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, Options(logger.GormLevel(cfg.LogLevel)))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("database connection established")
	return nil
}

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Task{},
	}
}

func Migrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info().Msg("database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
