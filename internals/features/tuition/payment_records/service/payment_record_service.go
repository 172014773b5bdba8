package service

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"tuition_backend/internals/constants"
	"tuition_backend/internals/features/tuition/payment_records/dto"
	m "tuition_backend/internals/features/tuition/payment_records/model"
	"tuition_backend/internals/features/tuition/payment_records/repository"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/apperr"
)

const msgPeriodConflict = "A payment record already exists for this student and billing period"

// Store: operasi persistence yang dibutuhkan PaymentRecordService.
type Store interface {
	List(ctx context.Context, f repository.Filter) ([]m.PaymentRecordView, error)
	GetView(ctx context.Context, id uint) (*m.PaymentRecordView, error)
	StudentName(ctx context.Context, studentID uint) (string, error)
	PeriodTaken(ctx context.Context, studentID uint, year, month int) (bool, error)
	Create(ctx context.Context, row *m.PaymentRecordModel) error
	UpdateStatus(ctx context.Context, row *m.PaymentRecordModel) error
	Delete(ctx context.Context, id uint) error
	CreateMissingForPeriod(ctx context.Context, year, month int, amount decimal.Decimal) (int64, error)
}

type PaymentRecordService struct {
	store    Store
	validate *validator.Validate
}

func NewPaymentRecordService(store Store) *PaymentRecordService {
	return &PaymentRecordService{store: store, validate: helper.NewValidator()}
}

// List: semua tagihan, urut tahun DESC lalu bulan DESC.
// Filter overdue diterapkan setelah proyeksi karena bergantung pada now.
func (s *PaymentRecordService) List(ctx context.Context, q dto.ListPaymentRecordQuery, now time.Time) ([]dto.PaymentRecordResponse, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, apperr.Validation("invalid query", helper.ValidationFieldErrors(err))
	}

	rows, err := s.store.List(ctx, repository.Filter{
		StudentID: q.StudentID,
		IsPaid:    q.IsPaid,
		Year:      q.Year,
		Month:     q.Month,
	})
	if err != nil {
		return nil, err
	}

	out := dto.FromViews(rows, now)
	if q.Overdue == nil {
		return out, nil
	}
	filtered := out[:0]
	for _, it := range out {
		if it.IsOverdue == *q.Overdue {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// ListByStudent: urutan sama dengan List. Siswa tidak ada → NotFound.
func (s *PaymentRecordService) ListByStudent(ctx context.Context, studentID uint, now time.Time) ([]dto.PaymentRecordResponse, error) {
	if _, err := s.studentName(ctx, studentID); err != nil {
		return nil, err
	}
	rows, err := s.store.List(ctx, repository.Filter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	return dto.FromViews(rows, now), nil
}

func (s *PaymentRecordService) Get(ctx context.Context, id uint, now time.Time) (*dto.PaymentRecordResponse, error) {
	v, err := s.store.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromView(*v, now)
	return &out, nil
}

// Create: siswa harus ada dan slot (student, year, month) harus kosong.
// Pre-check hanya advisory; unique index yang menentukan kalau ada race.
func (s *PaymentRecordService) Create(ctx context.Context, req dto.CreatePaymentRecordRequest, now time.Time) (*dto.PaymentRecordResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("validation failed", helper.ValidationFieldErrors(err))
	}

	name, err := s.store.StudentName(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	taken, err := s.store.PeriodTaken(ctx, req.StudentID, req.BillYear, req.BillMonth)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(msgPeriodConflict, nil)
	}

	row := req.ToModel()
	if err := s.store.Create(ctx, row); err != nil {
		return nil, err
	}
	log.Printf("[PAYMENT] created id=%d student=%d period=%04d-%02d", row.PaymentRecordID, row.PaymentRecordStudentID, row.PaymentRecordBillYear, row.PaymentRecordBillMonth)

	out := dto.FromModel(*row, name, now)
	return &out, nil
}

// UpdateStatus: paid → payment_date = input atau now; unpaid → payment_date dikosongkan.
func (s *PaymentRecordService) UpdateStatus(ctx context.Context, id uint, req dto.UpdatePaymentStatusRequest, now time.Time) (*dto.PaymentRecordResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("validation failed", helper.ValidationFieldErrors(err))
	}

	v, err := s.store.GetView(ctx, id)
	if err != nil {
		return nil, err
	}

	row := v.PaymentRecordModel
	req.ApplyTo(&row, now)
	if err := s.store.UpdateStatus(ctx, &row); err != nil {
		return nil, err
	}

	out := dto.FromModel(row, v.StudentName(), now)
	return &out, nil
}

func (s *PaymentRecordService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}

// GenerateMonthly membuat tagihan unpaid untuk setiap siswa yang belum punya
// record di periode tersebut. Idempoten: slot terisi dilewati.
func (s *PaymentRecordService) GenerateMonthly(ctx context.Context, req dto.GenerateMonthlyRequest) (*dto.GenerateMonthlyResponse, error) {
	if req.Amount == nil {
		return nil, apperr.Field("amount", "is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("validation failed", helper.ValidationFieldErrors(err))
	}

	count, err := s.store.CreateMissingForPeriod(ctx, req.Year, req.Month, req.Amount.Round(constants.AmountScale))
	if err != nil {
		return nil, err
	}
	log.Printf("[PAYMENT] generated period=%04d-%02d count=%d", req.Year, req.Month, count)

	return &dto.GenerateMonthlyResponse{Year: req.Year, Month: req.Month, Count: count}, nil
}

// SummaryByStudent: total tagihan, terbayar, sisa, dan jumlah overdue per siswa.
func (s *PaymentRecordService) SummaryByStudent(ctx context.Context, studentID uint, now time.Time) (*dto.StudentPaymentSummaryResponse, error) {
	name, err := s.studentName(ctx, studentID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.List(ctx, repository.Filter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	out := dto.Summarize(studentID, name, dto.FromViews(rows, now))
	return &out, nil
}

// studentName untuk endpoint yang dialamatkan ke siswa: tidak ada → NotFound.
func (s *PaymentRecordService) studentName(ctx context.Context, studentID uint) (string, error) {
	name, err := s.store.StudentName(ctx, studentID)
	if apperr.Is(err, apperr.KindMissingDependency) {
		return "", apperr.NotFound("Student not found")
	}
	return name, err
}
