package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "tuition_backend/internals/features/tuition/payment_records/model"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/apperr"
)

const (
	msgPaymentNotFound   = "Payment record not found"
	msgStudentNotFound   = "Student not found"
	msgPeriodConflict    = "A payment record already exists for this student and billing period"
	orderByBillingPeriod = "payment_records.payment_record_bill_year DESC, payment_records.payment_record_bill_month DESC, payment_records.payment_record_id DESC"
)

// Filter untuk list; nil = tidak difilter.
type Filter struct {
	StudentID *uint
	IsPaid    *bool
	Year      *int
	Month     *int
}

type PaymentRecordRepository struct {
	DB *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{DB: db}
}

// base: payment_records JOIN students (untuk nama siswa)
func (r *PaymentRecordRepository) base(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("payment_records").
		Select("payment_records.*, students.student_first_name, students.student_last_name").
		Joins("JOIN students ON students.student_id = payment_records.payment_record_student_id")
}

// List: urutan tetap tahun DESC, bulan DESC (periode terbaru dulu).
func (r *PaymentRecordRepository) List(ctx context.Context, f Filter) ([]m.PaymentRecordView, error) {
	q := r.base(ctx)
	if f.StudentID != nil {
		q = q.Where("payment_records.payment_record_student_id = ?", *f.StudentID)
	}
	if f.IsPaid != nil {
		q = q.Where("payment_records.payment_record_is_paid = ?", *f.IsPaid)
	}
	if f.Year != nil {
		q = q.Where("payment_records.payment_record_bill_year = ?", *f.Year)
	}
	if f.Month != nil {
		q = q.Where("payment_records.payment_record_bill_month = ?", *f.Month)
	}

	var rows []m.PaymentRecordView
	if err := q.Order(orderByBillingPeriod).Scan(&rows).Error; err != nil {
		return nil, apperr.Storage("list payment records", err)
	}
	return rows, nil
}

func (r *PaymentRecordRepository) GetView(ctx context.Context, id uint) (*m.PaymentRecordView, error) {
	var rows []m.PaymentRecordView
	if err := r.base(ctx).
		Where("payment_records.payment_record_id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, apperr.Storage("get payment record", err)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(msgPaymentNotFound)
	}
	return &rows[0], nil
}

// StudentName: nama siswa pemilik; MissingDependency kalau siswa tidak ada.
func (r *PaymentRecordRepository) StudentName(ctx context.Context, studentID uint) (string, error) {
	var row struct {
		First string `gorm:"column:student_first_name"`
		Last  string `gorm:"column:student_last_name"`
	}
	res := r.DB.WithContext(ctx).
		Table("students").
		Select("student_first_name, student_last_name").
		Where("student_id = ?", studentID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return "", apperr.Storage("lookup student", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", apperr.MissingDependency(msgStudentNotFound)
	}
	return row.First + " " + row.Last, nil
}

// PeriodTaken: cek advisory sebelum insert (unique index tetap penentu akhir).
func (r *PaymentRecordRepository) PeriodTaken(ctx context.Context, studentID uint, year, month int) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&m.PaymentRecordModel{}).
		Where("payment_record_student_id = ? AND payment_record_bill_year = ? AND payment_record_bill_month = ?",
			studentID, year, month).
		Count(&count).Error; err != nil {
		return false, apperr.Storage("check billing period", err)
	}
	return count > 0, nil
}

func (r *PaymentRecordRepository) Create(ctx context.Context, row *m.PaymentRecordModel) error {
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return classifyWriteError("create payment record", err)
	}
	return nil
}

// UpdateStatus menulis kolom status saja (is_paid, payment_date, notes).
func (r *PaymentRecordRepository) UpdateStatus(ctx context.Context, row *m.PaymentRecordModel) error {
	res := r.DB.WithContext(ctx).
		Model(&m.PaymentRecordModel{}).
		Where("payment_record_id = ?", row.PaymentRecordID).
		Updates(map[string]interface{}{
			"payment_record_is_paid":      row.PaymentRecordIsPaid,
			"payment_record_payment_date": row.PaymentRecordPaymentDate,
			"payment_record_notes":        row.PaymentRecordNotes,
		})
	if res.Error != nil {
		return classifyWriteError("update payment status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgPaymentNotFound)
	}
	return nil
}

func (r *PaymentRecordRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).
		Where("payment_record_id = ?", id).
		Delete(&m.PaymentRecordModel{})
	if res.Error != nil {
		return apperr.Storage("delete payment record", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgPaymentNotFound)
	}
	return nil
}

// CreateMissingForPeriod membuat tagihan unpaid untuk semua siswa yang belum
// punya record di (year, month). Slot yang sudah terisi dilewati
// (ON CONFLICT DO NOTHING), jadi aman dijalankan ulang.
func (r *PaymentRecordRepository) CreateMissingForPeriod(ctx context.Context, year, month int, amount decimal.Decimal) (int64, error) {
	var created int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var studentIDs []uint
		if err := tx.Table("students").
			Where(`NOT EXISTS (
				SELECT 1 FROM payment_records p
				WHERE p.payment_record_student_id = students.student_id
				  AND p.payment_record_bill_year = ?
				  AND p.payment_record_bill_month = ?)`, year, month).
			Order("student_id").
			Pluck("student_id", &studentIDs).Error; err != nil {
			return err
		}
		if len(studentIDs) == 0 {
			return nil
		}

		rows := make([]m.PaymentRecordModel, 0, len(studentIDs))
		for _, sid := range studentIDs {
			rows = append(rows, m.PaymentRecordModel{
				PaymentRecordStudentID: sid,
				PaymentRecordBillYear:  year,
				PaymentRecordBillMonth: month,
				PaymentRecordAmount:    amount,
			})
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 200)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classifyWriteError("generate monthly records", err)
	}
	return created, nil
}

// unique → Conflict, FK → MissingDependency, sisanya Storage.
func classifyWriteError(op string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case helper.IsUniqueViolation(err):
		return apperr.Conflict(msgPeriodConflict, err)
	case helper.IsForeignKeyViolation(err):
		return apperr.MissingDependency(msgStudentNotFound)
	default:
		return apperr.Storage(op, err)
	}
}
