package dto

import (
	"time"

	"tuition_backend/internals/constants"
	paymentDTO "tuition_backend/internals/features/tuition/payment_records/dto"
	m "tuition_backend/internals/features/tuition/students/model"
)

/* =============== REQUESTS =============== */

type CreateStudentRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=50"`
	LastName  string `json:"lastName"  validate:"required,notblank,max=50"`
	Email     string `json:"email"     validate:"required,email,max=320"`
}

// ToModel: enrollment date = waktu pembuatan.
func (r CreateStudentRequest) ToModel(now time.Time) *m.StudentModel {
	return &m.StudentModel{
		StudentFirstName:      r.FirstName,
		StudentLastName:       r.LastName,
		StudentEmail:          r.Email,
		StudentEnrollmentDate: now,
	}
}

type UpdateStudentRequest struct {
	FirstName      string     `json:"firstName"      validate:"required,notblank,max=50"`
	LastName       string     `json:"lastName"       validate:"required,notblank,max=50"`
	Email          string     `json:"email"          validate:"required,email,max=320"`
	EnrollmentDate *time.Time `json:"enrollmentDate" validate:"omitempty"`
}

// ApplyTo: enrollment date hanya diganti kalau dikirim.
func (r UpdateStudentRequest) ApplyTo(mo *m.StudentModel) {
	mo.StudentFirstName = r.FirstName
	mo.StudentLastName = r.LastName
	mo.StudentEmail = r.Email
	if r.EnrollmentDate != nil {
		mo.StudentEnrollmentDate = *r.EnrollmentDate
	}
}

type ListStudentQuery struct {
	Include string `query:"include" validate:"omitempty,oneof=payments"`
}

func (q ListStudentQuery) WithPayments() bool { return q.Include == constants.IncludePaymentsOption }

/* =============== RESPONSES =============== */

type StudentResponse struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	EnrollmentDate time.Time `json:"enrollmentDate"`

	// nil = tidak di-include; include=payments selalu kirim array (boleh kosong)
	Payments *[]paymentDTO.PaymentRecordResponse `json:"payments,omitempty"`
}

/* =============== MAPPERS =============== */

// FromModel: payments ikut dipetakan kalau sudah di-preload.
func FromModel(x m.StudentModel, now time.Time) StudentResponse {
	out := StudentResponse{
		ID:             x.StudentID,
		FirstName:      x.StudentFirstName,
		LastName:       x.StudentLastName,
		Email:          x.StudentEmail,
		EnrollmentDate: x.StudentEnrollmentDate.In(now.Location()),
	}
	if x.Payments != nil {
		name := x.FullName()
		list := make([]paymentDTO.PaymentRecordResponse, 0, len(x.Payments))
		for _, p := range x.Payments {
			list = append(list, paymentDTO.FromModel(p, name, now))
		}
		out.Payments = &list
	}
	return out
}

func FromModels(list []m.StudentModel, now time.Time) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it, now))
	}
	return out
}
