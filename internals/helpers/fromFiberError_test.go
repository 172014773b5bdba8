package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"tuition_backend/internals/helpers/apperr"
)

func TestFromFiberError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", apperr.Field("email", "is required"), http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed"},
		{"not found", apperr.NotFound("Student not found"), http.StatusNotFound, "NOT_FOUND", "Student not found"},
		{"missing dependency", apperr.MissingDependency("Student not found"), http.StatusBadRequest, "BAD_REQUEST", "Student not found"},
		{"conflict", apperr.Conflict("dup", nil), http.StatusConflict, "CONFLICT", "dup"},
		{"storage hides detail", apperr.Storage("list", errors.New("dial tcp: refused")), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
		{"fiber error", fiber.NewError(http.StatusBadRequest, "invalid id"), http.StatusBadRequest, "BAD_REQUEST", "invalid id"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return FromFiberError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if body.Success || body.ErrorCode != tt.wantCode || body.Message != tt.wantMsg {
				t.Errorf("body = %+v", body)
			}
		})
	}
}
