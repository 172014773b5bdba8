// internals/features/tuition/students/model/student_model.go
package model

import (
	"time"

	paymentModel "tuition_backend/internals/features/tuition/payment_records/model"
)

type StudentModel struct {
	StudentID uint `gorm:"column:student_id;primaryKey;autoIncrement" json:"student_id"`

	StudentFirstName string `gorm:"column:student_first_name;type:varchar(50);not null" json:"student_first_name"`
	StudentLastName  string `gorm:"column:student_last_name;type:varchar(50);not null"  json:"student_last_name"`

	// Unik global, perbandingan case-sensitive (byte-equal)
	StudentEmail string `gorm:"column:student_email;type:varchar(320);not null;uniqueIndex:uq_students_email" json:"student_email"`

	StudentEnrollmentDate time.Time `gorm:"column:student_enrollment_date;not null" json:"student_enrollment_date"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`

	// Satu siswa punya banyak tagihan; relasi satu arah lewat FK di payment_records.
	Payments []paymentModel.PaymentRecordModel `gorm:"foreignKey:PaymentRecordStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StudentModel) TableName() string { return "students" }

// FullName: "First Last".
func (m StudentModel) FullName() string {
	return m.StudentFirstName + " " + m.StudentLastName
}
