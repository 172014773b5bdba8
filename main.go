package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tuition_backend/internals/configs"
	database "tuition_backend/internals/databases"
	paymentRepo "tuition_backend/internals/features/tuition/payment_records/repository"
	"tuition_backend/internals/features/tuition/payment_records/scheduler"
	paymentService "tuition_backend/internals/features/tuition/payment_records/service"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/dbtime"
	middlewares "tuition_backend/internals/middlewares"
	routes "tuition_backend/internals/route"
	"tuition_backend/internals/seeds"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	// amount dikirim sebagai angka JSON, bukan string
	decimal.MarshalJSONWithoutQuotes = true

	clock := dbtime.SystemClock(cfg.Location())

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("[DB] %v", err)
	}
	database.TunePool(db, cfg)
	if err := prepareSchema(db, cfg); err != nil {
		log.Fatalf("[DB] %v", err)
	}
	if cfg.DBSeed {
		seeds.RunAllSeeds(context.Background(), db, clock())
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app, cfg, clock)

	// ✅ Routes
	if err := routes.SetupRoutes(app, db, cfg); err != nil {
		log.Fatalf("[ROUTES] %v", err)
	}

	// ⏱ scheduler setelah DB siap
	billing := startBillingCron(db, cfg, clock)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	if billing != nil {
		<-billing.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
}

// prepareSchema: SQL migrations (production) dan/atau gorm AutoMigrate (dev).
func prepareSchema(db *gorm.DB, cfg *configs.Config) error {
	if cfg.DBMigrate {
		if err := database.RunMigrations(cfg.DSN()); err != nil {
			return err
		}
	}
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}
	return nil
}

// startBillingCron: aktif hanya kalau BILLING_CRON & BILLING_DEFAULT_AMOUNT diisi.
func startBillingCron(db *gorm.DB, cfg *configs.Config, clock dbtime.Clock) *cron.Cron {
	amount, err := cfg.DefaultBillingAmount()
	if err != nil || amount == nil || cfg.BillingCron == "" {
		log.Println("[BILLING-CRON] disabled")
		return nil
	}

	svc := paymentService.NewPaymentRecordService(paymentRepo.NewPaymentRecordRepository(db))
	c, err := scheduler.StartMonthlyBilling(svc, clock, scheduler.MonthlyBillingConfig{
		Schedule: cfg.BillingCron,
		Amount:   *amount,
	})
	if err != nil {
		log.Fatalf("[BILLING-CRON] %v", err)
	}
	return c
}
