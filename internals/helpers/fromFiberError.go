package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"tuition_backend/internals/helpers/apperr"
)

// FromFiberError mengubah error dari handler/service menjadi response JSON konsisten.
//   - *apperr.Error → status sesuai Kind
//   - *fiber.Error  → status & pesan apa adanya
//   - lainnya       → 500 tanpa detail (detail hanya di log)
func FromFiberError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return fromAppError(c, ae)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	logRequestError(c, err)
	return JsonError(c, fiber.StatusInternalServerError, "An unexpected error occurred")
}

func fromAppError(c *fiber.Ctx, ae *apperr.Error) error {
	if ae.Kind == apperr.KindValidation {
		return JsonValidationError(c, ae.Message, ae.Fields)
	}
	status := StatusOf(ae)
	if status >= fiber.StatusInternalServerError {
		logRequestError(c, ae)
		return JsonError(c, status, "An unexpected error occurred")
	}
	return JsonError(c, status, ae.Message)
}

// StatusOf: HTTP status untuk sebuah error service.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindMissingDependency:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler untuk fiber.Config: semua error yang lolos dari handler lewat sini.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}

func logRequestError(c *fiber.Ctx, err error) {
	log.Printf("[ERROR] id=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
}
