package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"tuition_backend/internals/features/tuition/payment_records/dto"
	"tuition_backend/internals/helpers/dbtime"
)

// Generator: bagian service yang dipanggil job bulanan.
type Generator interface {
	GenerateMonthly(ctx context.Context, req dto.GenerateMonthlyRequest) (*dto.GenerateMonthlyResponse, error)
}

type MonthlyBillingConfig struct {
	Schedule string          // ekspresi cron 5 field, mis. "0 6 1 * *"
	Amount   decimal.Decimal // nominal tagihan yang dibuat
	Timeout  time.Duration   // batas waktu satu kali jalan
}

// RunMonthlyBilling membuat tagihan periode bulan berjalan (menurut clock).
func RunMonthlyBilling(ctx context.Context, gen Generator, clock dbtime.Clock, amount decimal.Decimal) (*dto.GenerateMonthlyResponse, error) {
	now := clock()
	a := amount
	return gen.GenerateMonthly(ctx, dto.GenerateMonthlyRequest{
		Year:   now.Year(),
		Month:  int(now.Month()),
		Amount: &a,
	})
}

// StartMonthlyBilling mendaftarkan job ke cron dan langsung Start.
// Pemanggil bertanggung jawab memanggil Stop() saat shutdown.
func StartMonthlyBilling(gen Generator, clock dbtime.Clock, cfg MonthlyBillingConfig) (*cron.Cron, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	c := cron.New(
		cron.WithLocation(clock().Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	_, err := c.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		res, err := RunMonthlyBilling(ctx, gen, clock, cfg.Amount)
		if err != nil {
			log.Printf("[BILLING-CRON] generate gagal: %v", err)
			return
		}
		log.Printf("[BILLING-CRON] period=%04d-%02d created=%d", res.Year, res.Month, res.Count)
	})
	if err != nil {
		return nil, fmt.Errorf("add billing cron %q: %w", cfg.Schedule, err)
	}

	log.Printf("[BILLING-CRON] started schedule=%q amount=%s", cfg.Schedule, cfg.Amount.StringFixed(2))
	c.Start()
	return c, nil
}
