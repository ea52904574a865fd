package database

import (
	"fmt"

	"github.com/AranyaAryaman/noJIRA/internal/config"
	"github.com/AranyaAryaman/noJIRA/internal/logger"
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database selected by cfg.DBDriver. Postgres is the
// default; MySQL is supported for deployments that already run one.
func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Infof("database connection established (%s)", cfg.DBDriver)
	return nil
}

// Migrate creates or updates the schema for all entities.
func Migrate() error {
	return MigrateWith(DB)
}

// MigrateWith runs migrations against an explicit handle; tests use it
// with in-memory SQLite.
func MigrateWith(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Person{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectTeam{},
		&models.Task{},
		&models.TaskTag{},
		&models.TaskWatcher{},
		&models.TaskAttachment{},
		&models.Comment{},
		&models.CommentAttachment{},
		&models.TaskStatusHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
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
