package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tuition_backend/internals/databases/databasetest"
	paymentModel "tuition_backend/internals/features/tuition/payment_records/model"
	"tuition_backend/internals/features/tuition/students/dto"
	"tuition_backend/internals/features/tuition/students/repository"
	"tuition_backend/internals/features/tuition/students/service"
	"tuition_backend/internals/helpers/apperr"
)

var now = time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*service.StudentService, *gorm.DB) {
	t.Helper()
	db := databasetest.Open(t)
	return service.NewStudentService(repository.NewStudentRepository(db)), db
}

func mustCreate(t *testing.T, svc *service.StudentService, first, last, email string) *dto.StudentResponse {
	t.Helper()
	got, err := svc.Create(context.Background(), dto.CreateStudentRequest{
		FirstName: first, LastName: last, Email: email,
	}, now)
	if err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return got
}

func TestCreateThenGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, "Ada", "Lovelace", "ada@example.com")
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := svc.Get(ctx, created.ID, false, now)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Ada" || got.LastName != "Lovelace" || got.Email != "ada@example.com" {
		t.Errorf("unexpected student %+v", got)
	}
	if !got.EnrollmentDate.Equal(now) {
		t.Errorf("EnrollmentDate = %s, want %s", got.EnrollmentDate, now)
	}
}

func TestIncludePaymentsWithoutRecords(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	grace := mustCreate(t, svc, "Grace", "Hopper", "grace@example.com")

	list, err := svc.List(ctx, dto.ListStudentQuery{Include: "payments"}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Payments == nil || len(*list[0].Payments) != 0 {
		t.Errorf("expected empty payments list, got %+v", list)
	}

	got, err := svc.Get(ctx, grace.ID, true, now)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Payments == nil || len(*got.Payments) != 0 {
		t.Errorf("expected empty payments on get, got %v", got.Payments)
	}
}

func TestGetMissingStudent(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), 999, false, now)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t)
	long := strings.Repeat("a", 51)

	tests := []struct {
		name  string
		req   dto.CreateStudentRequest
		field string
	}{
		{"missing first name", dto.CreateStudentRequest{LastName: "B", Email: "a@b.co"}, "firstName"},
		{"blank first name", dto.CreateStudentRequest{FirstName: "   ", LastName: "B", Email: "a@b.co"}, "firstName"},
		{"blank last name", dto.CreateStudentRequest{FirstName: "A", LastName: "\t", Email: "a@b.co"}, "lastName"},
		{"oversized last name", dto.CreateStudentRequest{FirstName: "A", LastName: long, Email: "a@b.co"}, "lastName"},
		{"malformed email", dto.CreateStudentRequest{FirstName: "A", LastName: "B", Email: "not-an-email"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req, now)
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := ae.Fields[tt.field]; !ok {
				t.Errorf("expected field %q in %v", tt.field, ae.Fields)
			}
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	mustCreate(t, svc, "Ada", "Lovelace", "ada@example.com")

	_, err := svc.Create(context.Background(), dto.CreateStudentRequest{
		FirstName: "Other", LastName: "Person", Email: "ada@example.com",
	}, now)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestEmailComparisonIsCaseSensitive(t *testing.T) {
	svc, _ := newService(t)
	mustCreate(t, svc, "Ada", "Lovelace", "ada@example.com")
	mustCreate(t, svc, "Ada", "Upper", "ADA@example.com")

	list, err := svc.List(context.Background(), dto.ListStudentQuery{}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 students, got %d", len(list))
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ada := mustCreate(t, svc, "Ada", "Lovelace", "ada@example.com")
	grace := mustCreate(t, svc, "Grace", "Hopper", "grace@example.com")

	t.Run("own email is exempt and enrollment date is kept", func(t *testing.T) {
		got, err := svc.Update(ctx, ada.ID, dto.UpdateStudentRequest{
			FirstName: "Augusta", LastName: "Lovelace", Email: "ada@example.com",
		}, now.Add(time.Hour))
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.FirstName != "Augusta" {
			t.Errorf("FirstName = %q", got.FirstName)
		}
		if !got.EnrollmentDate.Equal(now) {
			t.Errorf("EnrollmentDate changed to %s", got.EnrollmentDate)
		}
	})

	t.Run("explicit enrollment date replaces stored value", func(t *testing.T) {
		enrolled := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Update(ctx, ada.ID, dto.UpdateStudentRequest{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", EnrollmentDate: &enrolled,
		}, now)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err := svc.Get(ctx, ada.ID, false, now)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !got.EnrollmentDate.Equal(enrolled) {
			t.Errorf("EnrollmentDate = %s, want %s", got.EnrollmentDate, enrolled)
		}
	})

	t.Run("email of another student conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, ada.ID, dto.UpdateStudentRequest{
			FirstName: "Ada", LastName: "Lovelace", Email: grace.Email,
		}, now)
		if !apperr.Is(err, apperr.KindConflict) {
			t.Fatalf("expected Conflict, got %v", err)
		}
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, ada.ID, dto.UpdateStudentRequest{
			FirstName: " ", LastName: "\n", Email: "ada@example.com",
		}, now)
		var ae *apperr.Error
		if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		for _, field := range []string{"firstName", "lastName"} {
			if _, ok := ae.Fields[field]; !ok {
				t.Errorf("expected field %q in %v", field, ae.Fields)
			}
		}
		got, err := svc.Get(ctx, ada.ID, false, now)
		if err != nil || got.FirstName != "Ada" {
			t.Errorf("stored student changed: %+v, %v", got, err)
		}
	})

	t.Run("missing student", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, dto.UpdateStudentRequest{
			FirstName: "X", LastName: "Y", Email: "x@example.com",
		}, now)
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

func TestDeleteCascadesPaymentRecords(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	ada := mustCreate(t, svc, "Ada", "Lovelace", "ada@example.com")
	grace := mustCreate(t, svc, "Grace", "Hopper", "grace@example.com")

	seed := []struct {
		studentID uint
		month     int
	}{
		{ada.ID, 1}, {ada.ID, 2}, {ada.ID, 3}, {grace.ID, 1},
	}
	for _, s := range seed {
		row := paymentModel.PaymentRecordModel{
			PaymentRecordStudentID: s.studentID,
			PaymentRecordBillYear:  2024,
			PaymentRecordBillMonth: s.month,
			PaymentRecordAmount:    decimal.RequireFromString("100.00"),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	if err := svc.Delete(ctx, ada.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var left int64
	db.Model(&paymentModel.PaymentRecordModel{}).Where("payment_record_student_id = ?", ada.ID).Count(&left)
	if left != 0 {
		t.Errorf("expected ada's payment records removed, %d left", left)
	}
	var others int64
	db.Model(&paymentModel.PaymentRecordModel{}).Where("payment_record_student_id = ?", grace.ID).Count(&others)
	if others != 1 {
		t.Errorf("expected grace's payment record kept, got %d", others)
	}

	if _, err := svc.Get(ctx, ada.ID, false, now); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, ada.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
}

func TestListIncludePayments(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	ada := mustCreate(t, svc, "Ada", "Lovelace", "ada@example.com")

	for _, p := range [][2]int{{2023, 12}, {2024, 3}, {2024, 1}} {
		row := paymentModel.PaymentRecordModel{
			PaymentRecordStudentID: ada.ID,
			PaymentRecordBillYear:  p[0],
			PaymentRecordBillMonth: p[1],
			PaymentRecordAmount:    decimal.RequireFromString("50.00"),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	list, err := svc.List(ctx, dto.ListStudentQuery{Include: "payments"}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Payments == nil || len(*list[0].Payments) != 3 {
		t.Fatalf("expected one student with 3 payments, got %+v", list)
	}
	want := [][2]int{{2024, 3}, {2024, 1}, {2023, 12}}
	for i, p := range *list[0].Payments {
		if p.BillYear != want[i][0] || p.BillMonth != want[i][1] {
			t.Errorf("payment[%d] = %d-%d, want %d-%d", i, p.BillYear, p.BillMonth, want[i][0], want[i][1])
		}
		if p.StudentName != "Ada Lovelace" {
			t.Errorf("StudentName = %q", p.StudentName)
		}
	}

	plain, err := svc.List(ctx, dto.ListStudentQuery{}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if plain[0].Payments != nil {
		t.Errorf("payments must be omitted without include")
	}

	if _, err := svc.List(ctx, dto.ListStudentQuery{Include: "grades"}, now); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for unknown include, got %v", err)
	}
}
