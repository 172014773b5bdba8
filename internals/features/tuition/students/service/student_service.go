package service

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"tuition_backend/internals/features/tuition/students/dto"
	paymentModel "tuition_backend/internals/features/tuition/payment_records/model"
	m "tuition_backend/internals/features/tuition/students/model"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/apperr"
)

const msgEmailConflict = "A student with this email already exists"

// Store: operasi persistence yang dibutuhkan StudentService.
type Store interface {
	List(ctx context.Context, withPayments bool) ([]m.StudentModel, error)
	GetByID(ctx context.Context, id uint, withPayments bool) (*m.StudentModel, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	Create(ctx context.Context, row *m.StudentModel) error
	Update(ctx context.Context, row *m.StudentModel) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type StudentService struct {
	store    Store
	validate *validator.Validate
}

func NewStudentService(store Store) *StudentService {
	return &StudentService{store: store, validate: helper.NewValidator()}
}

func (s *StudentService) List(ctx context.Context, q dto.ListStudentQuery, now time.Time) ([]dto.StudentResponse, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, apperr.Validation("invalid query", helper.ValidationFieldErrors(err))
	}
	rows, err := s.store.List(ctx, q.WithPayments())
	if err != nil {
		return nil, err
	}
	if q.WithPayments() {
		for i := range rows {
			ensurePayments(&rows[i])
		}
	}
	return dto.FromModels(rows, now), nil
}

func (s *StudentService) Get(ctx context.Context, id uint, withPayments bool, now time.Time) (*dto.StudentResponse, error) {
	row, err := s.store.GetByID(ctx, id, withPayments)
	if err != nil {
		return nil, err
	}
	if withPayments {
		ensurePayments(row)
	}
	out := dto.FromModel(*row, now)
	return &out, nil
}

func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest, now time.Time) (*dto.StudentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("validation failed", helper.ValidationFieldErrors(err))
	}

	taken, err := s.store.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(msgEmailConflict, nil)
	}

	row := req.ToModel(now)
	if err := s.store.Create(ctx, row); err != nil {
		return nil, err
	}
	log.Printf("[STUDENT] created id=%d", row.StudentID)

	out := dto.FromModel(*row, now)
	return &out, nil
}

// Update: email milik record itu sendiri tidak dianggap bentrok.
func (s *StudentService) Update(ctx context.Context, id uint, req dto.UpdateStudentRequest, now time.Time) (*dto.StudentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperr.Validation("validation failed", helper.ValidationFieldErrors(err))
	}

	row, err := s.store.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req.Email != row.StudentEmail {
		taken, err := s.store.EmailTaken(ctx, req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict(msgEmailConflict, nil)
		}
	}

	req.ApplyTo(row)
	if err := s.store.Update(ctx, row); err != nil {
		return nil, err
	}

	out := dto.FromModel(*row, now)
	return &out, nil
}

func (s *StudentService) Delete(ctx context.Context, id uint) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	log.Printf("[STUDENT] deleted id=%d payment_records=%d", id, removed)
	return nil
}

// ensurePayments: student tanpa tagihan tetap punya slice kosong (bukan nil).
func ensurePayments(row *m.StudentModel) {
	if row.Payments == nil {
		row.Payments = []paymentModel.PaymentRecordModel{}
	}
}
