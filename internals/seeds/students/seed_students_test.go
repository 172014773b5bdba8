package students

import (
	"context"
	"testing"
	"time"

	"tuition_backend/internals/databases/databasetest"
	paymentModel "tuition_backend/internals/features/tuition/payment_records/model"
	studentModel "tuition_backend/internals/features/tuition/students/model"
)

func TestSeedStudentsIsIdempotent(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	n, err := SeedStudentsFromJSON(ctx, db, DefaultData, now)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 3 {
		t.Fatalf("inserted = %d, want 3", n)
	}

	again, err := SeedStudentsFromJSON(ctx, db, DefaultData, now)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if again != 0 {
		t.Errorf("second run inserted %d", again)
	}

	var students, records, paid int64
	db.Model(&studentModel.StudentModel{}).Count(&students)
	db.Model(&paymentModel.PaymentRecordModel{}).Count(&records)
	db.Model(&paymentModel.PaymentRecordModel{}).Where("payment_record_is_paid = ?", true).Count(&paid)
	if students != 3 || records != 3 || paid != 1 {
		t.Errorf("students=%d records=%d paid=%d", students, records, paid)
	}
}

func TestSeedStudentsRejectsBadJSON(t *testing.T) {
	db := databasetest.Open(t)
	if _, err := SeedStudentsFromJSON(context.Background(), db, []byte("{"), time.Now()); err == nil {
		t.Fatal("expected decode error")
	}
}
