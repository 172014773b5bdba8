package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tuition_backend/internals/configs"
	paymentModel "tuition_backend/internals/features/tuition/payment_records/model"
	studentModel "tuition_backend/internals/features/tuition/students/model"
)

// ConnectDB membuka koneksi PostgreSQL lewat gorm (pgx di bawahnya).
func ConnectDB(cfg *configs.Config) (*gorm.DB, error) {
	log.Println("[DB] Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.DBLogLevel),
		NowFunc: func() time.Time {
			return time.Now().In(cfg.Location())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	log.Println("[DB] connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg *configs.Config) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[DB] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate dipakai untuk dev lokal & test (sqlite). Production pakai RunMigrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&studentModel.StudentModel{}, &paymentModel.PaymentRecordModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
		log.Println("[DB] pool closed")
	}
}
