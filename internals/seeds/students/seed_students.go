package students

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	paymentDTO "tuition_backend/internals/features/tuition/payment_records/dto"
	paymentRepo "tuition_backend/internals/features/tuition/payment_records/repository"
	paymentService "tuition_backend/internals/features/tuition/payment_records/service"
	studentDTO "tuition_backend/internals/features/tuition/students/dto"
	studentRepo "tuition_backend/internals/features/tuition/students/repository"
	studentService "tuition_backend/internals/features/tuition/students/service"
	"tuition_backend/internals/helpers/apperr"
)

//go:embed data_students.json
var DefaultData []byte

type PaymentSeed struct {
	BillYear  int             `json:"bill_year"`
	BillMonth int             `json:"bill_month"`
	Amount    decimal.Decimal `json:"amount"`
	IsPaid    bool            `json:"is_paid"`
	Notes     string          `json:"notes"`
}

type StudentSeed struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Payments  []PaymentSeed `json:"payments"`
}

// SeedStudentsFromJSON memasukkan siswa + tagihan lewat service (validasi & aturan unik tetap berlaku).
// Email/periode yang sudah ada dilewati, jadi aman dijalankan ulang.
func SeedStudentsFromJSON(ctx context.Context, db *gorm.DB, data []byte, now time.Time) (int, error) {
	var seeds []StudentSeed
	if err := sonic.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("decode seed json: %w", err)
	}

	students := studentService.NewStudentService(studentRepo.NewStudentRepository(db))
	payments := paymentService.NewPaymentRecordService(paymentRepo.NewPaymentRecordRepository(db))

	inserted := 0
	for _, s := range seeds {
		st, err := students.Create(ctx, studentDTO.CreateStudentRequest{
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Email:     s.Email,
		}, now)
		if apperr.Is(err, apperr.KindConflict) {
			log.Printf("[SEED] student %s sudah ada, lewati...", s.Email)
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed student %s: %w", s.Email, err)
		}
		inserted++

		for _, p := range s.Payments {
			notes := p.Notes
			rec, err := payments.Create(ctx, paymentDTO.CreatePaymentRecordRequest{
				StudentID: st.ID,
				BillYear:  p.BillYear,
				BillMonth: p.BillMonth,
				Amount:    p.Amount,
				Notes:     &notes,
			}, now)
			if err != nil {
				return inserted, fmt.Errorf("seed payment %s %04d-%02d: %w", s.Email, p.BillYear, p.BillMonth, err)
			}
			if p.IsPaid {
				paid := true
				if _, err := payments.UpdateStatus(ctx, rec.ID, paymentDTO.UpdatePaymentStatusRequest{IsPaid: &paid}, now); err != nil {
					return inserted, fmt.Errorf("seed payment status %d: %w", rec.ID, err)
				}
			}
		}
		log.Printf("[SEED] student %s (%d tagihan)", s.Email, len(s.Payments))
	}
	return inserted, nil
}
