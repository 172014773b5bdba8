package helper

import (
	"testing"

	"github.com/shopspring/decimal"
)

type sampleRequest struct {
	Name   string           `json:"name"   validate:"required,notblank,max=5"`
	Email  string           `json:"email"  validate:"required,email"`
	Amount decimal.Decimal  `json:"amount" validate:"required,dgte=0.01,dlte=10000.00"`
	Fee    *decimal.Decimal `json:"fee"    validate:"omitnil,dlte=10"`
	Year   *int             `query:"year"  validate:"omitempty,gte=2020"`
}

func TestValidatorFieldNamesAndDecimal(t *testing.T) {
	v := NewValidator()
	year := 2019
	fee := decimal.RequireFromString("10.01")

	err := v.Struct(sampleRequest{
		Name:   "toolong",
		Email:  "nope",
		Amount: decimal.RequireFromString("10000.01"),
		Fee:    &fee,
		Year:   &year,
	})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fields := ValidationFieldErrors(err)
	for _, name := range []string{"name", "email", "amount", "fee", "year"} {
		if len(fields[name]) == 0 {
			t.Errorf("missing error for %q in %v", name, fields)
		}
	}
	if got := fields["name"][0]; got != "must be at most 5 characters" {
		t.Errorf("name message = %q", got)
	}
	if got := fields["amount"][0]; got != "must be less than or equal to 10000.00" {
		t.Errorf("amount message = %q", got)
	}
}

func TestValidatorDecimalBounds(t *testing.T) {
	v := NewValidator()
	for amount, ok := range map[string]bool{
		"0":                      false,
		"-5":                     false,
		"0.01":                   true,
		"0.00999999999999999999": false,
		"10000":                  true,
		"10000.00":               true,
		"10000.0000000000000001": false,
		"10000.01":               false,
	} {
		err := v.Struct(sampleRequest{Name: "a", Email: "a@b.co", Amount: decimal.RequireFromString(amount)})
		if (err == nil) != ok {
			t.Errorf("amount %s: err = %v, want ok=%v", amount, err, ok)
		}
	}
}

func TestValidatorOptionalDecimal(t *testing.T) {
	v := NewValidator()
	base := sampleRequest{Name: "a", Email: "a@b.co", Amount: decimal.RequireFromString("1")}

	if err := v.Struct(base); err != nil {
		t.Errorf("nil fee must be skipped: %v", err)
	}
	zero := decimal.Zero
	base.Fee = &zero
	if err := v.Struct(base); err != nil {
		t.Errorf("zero fee within bound: %v", err)
	}
	over := decimal.RequireFromString("10.0000001")
	base.Fee = &over
	if fields := ValidationFieldErrors(v.Struct(base)); len(fields["fee"]) == 0 {
		t.Errorf("expected fee error, got %v", fields)
	}
}

func TestValidatorNotBlank(t *testing.T) {
	v := NewValidator()
	for _, name := range []string{" ", "\t", " \n "} {
		err := v.Struct(sampleRequest{Name: name, Email: "a@b.co", Amount: decimal.RequireFromString("1")})
		fields := ValidationFieldErrors(err)
		if len(fields["name"]) == 0 || fields["name"][0] != "must not be blank" {
			t.Errorf("name %q: fields = %v", name, fields)
		}
	}
	if err := v.Struct(sampleRequest{Name: " a ", Email: "a@b.co", Amount: decimal.RequireFromString("1")}); err != nil {
		t.Errorf("padded name rejected: %v", err)
	}
}

func TestValidationFieldErrorsNonValidator(t *testing.T) {
	if got := ValidationFieldErrors(nil); len(got) != 0 {
		t.Errorf("nil error → %v", got)
	}
}
