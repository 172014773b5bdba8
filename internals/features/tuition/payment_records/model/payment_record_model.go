// internals/features/tuition/payment_records/model/payment_record_model.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRecordModel struct {
	// PK
	PaymentRecordID uint `gorm:"column:payment_record_id;primaryKey;autoIncrement" json:"payment_record_id"`

	// FK ke students (ON DELETE CASCADE). Unik bersama periode tagihan.
	PaymentRecordStudentID uint `gorm:"column:payment_record_student_id;not null;uniqueIndex:uq_payment_records_student_period,priority:1" json:"payment_record_student_id"`

	// Periode
	PaymentRecordBillYear  int `gorm:"column:payment_record_bill_year;type:smallint;not null;uniqueIndex:uq_payment_records_student_period,priority:2;index:idx_payment_records_period,priority:1,sort:desc;check:ck_payment_records_year,payment_record_bill_year BETWEEN 2020 AND 2100" json:"payment_record_bill_year"`   // 2020..2100
	PaymentRecordBillMonth int `gorm:"column:payment_record_bill_month;type:smallint;not null;uniqueIndex:uq_payment_records_student_period,priority:3;index:idx_payment_records_period,priority:2,sort:desc;check:ck_payment_records_month,payment_record_bill_month BETWEEN 1 AND 12" json:"payment_record_bill_month"` // 1..12

	// Nominal (2 digit desimal)
	PaymentRecordAmount decimal.Decimal `gorm:"column:payment_record_amount;type:numeric(18,2);not null" json:"payment_record_amount"`

	// Status bayar: payment_date terisi jika dan hanya jika is_paid
	PaymentRecordIsPaid      bool       `gorm:"column:payment_record_is_paid;not null;default:false" json:"payment_record_is_paid"`
	PaymentRecordPaymentDate *time.Time `gorm:"column:payment_record_payment_date" json:"payment_record_payment_date,omitempty"`
	PaymentRecordNotes       *string    `gorm:"column:payment_record_notes;type:varchar(500)" json:"payment_record_notes,omitempty"`

	PaymentRecordCreatedAt time.Time `gorm:"column:payment_record_created_at;autoCreateTime" json:"payment_record_created_at"`
	PaymentRecordUpdatedAt time.Time `gorm:"column:payment_record_updated_at;autoUpdateTime" json:"payment_record_updated_at"`
}

func (PaymentRecordModel) TableName() string { return "payment_records" }

// PaymentRecordView: baris payment_records + nama siswa hasil JOIN ke students.
type PaymentRecordView struct {
	PaymentRecordModel
	StudentFirstName string `gorm:"column:student_first_name" json:"student_first_name"`
	StudentLastName  string `gorm:"column:student_last_name"  json:"student_last_name"`
}

// StudentName: "First Last" (dipisah satu spasi).
func (v PaymentRecordView) StudentName() string {
	return v.StudentFirstName + " " + v.StudentLastName
}

// MarkPaid menerapkan transisi status bayar.
//   - paid=true  → payment_date = paidAt (kalau diisi) atau now
//   - paid=false → payment_date dikosongkan, paidAt diabaikan
func (m *PaymentRecordModel) MarkPaid(paid bool, paidAt *time.Time, now time.Time) {
	m.PaymentRecordIsPaid = paid
	if !paid {
		m.PaymentRecordPaymentDate = nil
		return
	}
	if paidAt != nil {
		t := *paidAt
		m.PaymentRecordPaymentDate = &t
		return
	}
	t := now
	m.PaymentRecordPaymentDate = &t
}
