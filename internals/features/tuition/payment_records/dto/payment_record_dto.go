package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"tuition_backend/internals/constants"
	m "tuition_backend/internals/features/tuition/payment_records/model"
	"tuition_backend/internals/features/tuition/payment_records/projection"
	"tuition_backend/internals/helpers/dbtime"
)

/* =============== REQUESTS =============== */

// Create
type CreatePaymentRecordRequest struct {
	StudentID uint            `json:"studentId" validate:"required,gt=0"`
	BillYear  int             `json:"billYear"  validate:"required,gte=2020,lte=2100"` // 2020..2100
	BillMonth int             `json:"billMonth" validate:"required,gte=1,lte=12"`      // 1..12
	Amount    decimal.Decimal `json:"amount"    validate:"required,dgte=0.01,dlte=10000.00"`
	Notes     *string         `json:"notes"     validate:"omitempty,max=500"`
}

// ToModel: record baru selalu unpaid tanpa payment_date.
func (r CreatePaymentRecordRequest) ToModel() *m.PaymentRecordModel {
	var notes *string
	if r.Notes != nil && *r.Notes != "" {
		n := *r.Notes
		notes = &n
	}
	return &m.PaymentRecordModel{
		PaymentRecordStudentID:   r.StudentID,
		PaymentRecordBillYear:    r.BillYear,
		PaymentRecordBillMonth:   r.BillMonth,
		PaymentRecordAmount:      r.Amount.Round(constants.AmountScale),
		PaymentRecordIsPaid:      false,
		PaymentRecordPaymentDate: nil,
		PaymentRecordNotes:       notes,
	}
}

// Update status (paid/unpaid)
type UpdatePaymentStatusRequest struct {
	IsPaid      *bool      `json:"isPaid"      validate:"required"`
	PaymentDate *time.Time `json:"paymentDate" validate:"omitempty"`
	Notes       *string    `json:"notes"       validate:"omitempty,max=500"`
}

// ApplyTo menerapkan perubahan status ke model existing.
// Notes hanya diganti kalau string tidak kosong; "" berarti "tidak berubah".
func (r UpdatePaymentStatusRequest) ApplyTo(mo *m.PaymentRecordModel, now time.Time) {
	mo.MarkPaid(*r.IsPaid, r.PaymentDate, now)
	if r.Notes != nil && *r.Notes != "" {
		n := *r.Notes
		mo.PaymentRecordNotes = &n
	}
}

// List / Query params
type ListPaymentRecordQuery struct {
	StudentID *uint `query:"studentId" validate:"omitempty,gt=0"`
	IsPaid    *bool `query:"isPaid"    validate:"omitempty"`
	Year      *int  `query:"year"      validate:"omitempty,gte=2020,lte=2100"`
	Month     *int  `query:"month"     validate:"omitempty,gte=1,lte=12"`

	// Difilter setelah proyeksi (bergantung "now")
	Overdue *bool `query:"overdue" validate:"omitempty"`
}

// Generate tagihan bulanan untuk semua siswa
type GenerateMonthlyRequest struct {
	Year   int              `query:"year"  json:"year"   validate:"required,gte=2020,lte=2100"`
	Month  int              `query:"month" json:"month"  validate:"required,gte=1,lte=12"`
	Amount *decimal.Decimal `query:"-"     json:"amount" validate:"omitnil,dgte=0.01,dlte=10000.00"`
}

/* =============== RESPONSES =============== */

type PaymentRecordResponse struct {
	ID          uint            `json:"id"`
	StudentID   uint            `json:"studentId"`
	StudentName string          `json:"studentName"`
	BillYear    int             `json:"billYear"`
	BillMonth   int             `json:"billMonth"`
	Amount      decimal.Decimal `json:"amount"`
	IsPaid      bool            `json:"isPaid"`
	PaymentDate *time.Time      `json:"paymentDate"`
	Notes       *string         `json:"notes"`

	// Turunan (tidak disimpan), dihitung ulang tiap read
	MonthName string    `json:"monthName"`
	DueDate   time.Time `json:"dueDate"`
	IsOverdue bool      `json:"isOverdue"`
}

type StudentPaymentSummaryResponse struct {
	StudentID        uint            `json:"studentId"`
	StudentName      string          `json:"studentName"`
	RecordCount      int             `json:"recordCount"`
	PaidCount        int             `json:"paidCount"`
	OverdueCount     int             `json:"overdueCount"`
	TotalBilled      decimal.Decimal `json:"totalBilled"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}

type GenerateMonthlyResponse struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

/* =============== MAPPERS =============== */

// FromModel: studentName diisi pemanggil (hasil JOIN / data siswa).
func FromModel(x m.PaymentRecordModel, studentName string, now time.Time) PaymentRecordResponse {
	p := projection.Project(x.PaymentRecordBillYear, x.PaymentRecordBillMonth, x.PaymentRecordIsPaid, now)

	return PaymentRecordResponse{
		ID:          x.PaymentRecordID,
		StudentID:   x.PaymentRecordStudentID,
		StudentName: studentName,
		BillYear:    x.PaymentRecordBillYear,
		BillMonth:   x.PaymentRecordBillMonth,
		Amount:      x.PaymentRecordAmount,
		IsPaid:      x.PaymentRecordIsPaid,
		PaymentDate: dbtime.ToAppTimePtr(x.PaymentRecordPaymentDate, now.Location()),
		Notes:       x.PaymentRecordNotes,
		MonthName:   p.MonthName,
		DueDate:     p.DueDate,
		IsOverdue:   p.IsOverdue,
	}
}

func FromView(v m.PaymentRecordView, now time.Time) PaymentRecordResponse {
	return FromModel(v.PaymentRecordModel, v.StudentName(), now)
}

func FromViews(list []m.PaymentRecordView, now time.Time) []PaymentRecordResponse {
	out := make([]PaymentRecordResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromView(it, now))
	}
	return out
}

// Summarize menghitung total tagihan/terbayar/sisa + jumlah overdue.
func Summarize(studentID uint, studentName string, list []PaymentRecordResponse) StudentPaymentSummaryResponse {
	out := StudentPaymentSummaryResponse{
		StudentID:        studentID,
		StudentName:      studentName,
		RecordCount:      len(list),
		TotalBilled:      decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for _, it := range list {
		out.TotalBilled = out.TotalBilled.Add(it.Amount)
		if it.IsPaid {
			out.PaidCount++
			out.TotalPaid = out.TotalPaid.Add(it.Amount)
		}
		if it.IsOverdue {
			out.OverdueCount++
		}
	}
	out.TotalOutstanding = out.TotalBilled.Sub(out.TotalPaid)
	return out
}
