package database

import (
	"errors"
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"krishi/config"
	"krishi/entities"
)

// Open connects to the configured store and brings the schema up to date.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for DB_DRIVER=postgres")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the legacy fix-ups first so AutoMigrate can build the unique
// email index on databases created before email existed.
func Migrate(db *gorm.DB) error {
	if err := migrateFarmersBlankEmail(db); err != nil {
		return fmt.Errorf("migrate farmers.email: %w", err)
	}
	if err := db.AutoMigrate(
		&entities.Farmer{},
		&entities.Session{},
		&entities.ScheduleRule{},
		&entities.CropEvent{},
		&entities.ActivityLogEntry{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// migrateFarmersBlankEmail turns empty-string emails into NULL. Several
// farmers without an email would otherwise collide on the unique index.
func migrateFarmersBlankEmail(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&entities.Farmer{}) || !m.HasColumn(&entities.Farmer{}, "Email") {
		return nil
	}
	return db.Exec(`UPDATE farmers SET email = NULL WHERE email = ''`).Error
}

// SeedScheduleRules fills crop_schedules when it is empty and reports how many
// rows were inserted. An existing table is left alone.
func SeedScheduleRules(db *gorm.DB, rules []entities.ScheduleRule) (int, error) {
	var n int64
	if err := db.Model(&entities.ScheduleRule{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count schedule rules: %w", err)
	}
	if n > 0 || len(rules) == 0 {
		return 0, nil
	}
	rows := make([]entities.ScheduleRule, len(rules))
	for i, r := range rules {
		r.ID = 0
		rows[i] = r
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("insert schedule rules: %w", err)
	}
	return len(rows), nil
}
