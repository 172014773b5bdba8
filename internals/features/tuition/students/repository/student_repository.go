package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	paymentModel "tuition_backend/internals/features/tuition/payment_records/model"
	m "tuition_backend/internals/features/tuition/students/model"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/apperr"
)

const (
	msgStudentNotFound = "Student not found"
	msgEmailConflict   = "A student with this email already exists"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func preloadPayments(db *gorm.DB) *gorm.DB {
	return db.Order("payment_record_bill_year DESC, payment_record_bill_month DESC, payment_record_id DESC")
}

func (r *StudentRepository) List(ctx context.Context, withPayments bool) ([]m.StudentModel, error) {
	q := r.DB.WithContext(ctx).Order("student_id ASC")
	if withPayments {
		q = q.Preload("Payments", preloadPayments)
	}
	var rows []m.StudentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperr.Storage("list students", err)
	}
	return rows, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uint, withPayments bool) (*m.StudentModel, error) {
	q := r.DB.WithContext(ctx)
	if withPayments {
		q = q.Preload("Payments", preloadPayments)
	}
	var row m.StudentModel
	if err := q.Where("student_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgStudentNotFound)
		}
		return nil, apperr.Storage("get student", err)
	}
	return &row, nil
}

// EmailTaken: perbandingan literal (case-sensitive). excludeID = 0 → tidak ada pengecualian.
func (r *StudentRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	q := r.DB.WithContext(ctx).
		Model(&m.StudentModel{}).
		Where("student_email = ?", email)
	if excludeID != 0 {
		q = q.Where("student_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Storage("check student email", err)
	}
	return count > 0, nil
}

func (r *StudentRepository) Create(ctx context.Context, row *m.StudentModel) error {
	if err := r.DB.WithContext(ctx).Omit("Payments").Create(row).Error; err != nil {
		return classifyWriteError("create student", err)
	}
	return nil
}

func (r *StudentRepository) Update(ctx context.Context, row *m.StudentModel) error {
	res := r.DB.WithContext(ctx).
		Model(&m.StudentModel{}).
		Where("student_id = ?", row.StudentID).
		Updates(map[string]interface{}{
			"student_first_name":      row.StudentFirstName,
			"student_last_name":       row.StudentLastName,
			"student_email":           row.StudentEmail,
			"student_enrollment_date": row.StudentEnrollmentDate,
		})
	if res.Error != nil {
		return classifyWriteError("update student", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgStudentNotFound)
	}
	return nil
}

// Delete menghapus siswa beserta semua tagihannya dalam satu transaksi.
// FK ON DELETE CASCADE juga ada di DB; hapus eksplisit supaya hasilnya sama
// di engine yang tidak menegakkan FK.
func (r *StudentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pr := tx.Where("payment_record_student_id = ?", id).Delete(&paymentModel.PaymentRecordModel{})
		if pr.Error != nil {
			return pr.Error
		}
		res := tx.Where("student_id = ?", id).Delete(&m.StudentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(msgStudentNotFound)
		}
		removed = pr.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classifyWriteError("delete student", err)
	}
	return removed, nil
}

func classifyWriteError(op string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if helper.IsUniqueViolation(err) {
		return apperr.Conflict(msgEmailConflict, err)
	}
	return apperr.Storage(op, err)
}
