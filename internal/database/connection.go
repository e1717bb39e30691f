package database

import (
	"fmt"
	"time"

	"github.com/mroshb/raffle_api/internal/config"
	"github.com/mroshb/raffle_api/internal/models"
	"github.com/mroshb/raffle_api/internal/security"
	"github.com/mroshb/raffle_api/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Raffle{},
		&models.Ticket{},
		&models.Transaction{},
		&models.Client{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// EnsureAdmin creates the bootstrap admin when no admin account exists.
// The insert is a no-op on the (username, role) unique index, so processes
// racing through startup cannot create duplicates.
func EnsureAdmin(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		logger.Info("Admin user already exists")
		return false, nil
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "role"}},
		DoNothing: true,
	}).Create(admin)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create admin user: %w", result.Error)
	}

	created := result.RowsAffected > 0
	if created {
		logger.Info("Bootstrap admin user created", "username", username)
	}
	return created, nil
}
