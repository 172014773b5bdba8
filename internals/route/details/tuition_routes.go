package details

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	paymentRoutes "tuition_backend/internals/features/tuition/payment_records/route"
	studentRoutes "tuition_backend/internals/features/tuition/students/route"
)

// TuitionRoutes memasang Student Directory & Payment Ledger di bawah /api.
func TuitionRoutes(api fiber.Router, db *gorm.DB, defaultAmount *decimal.Decimal) {
	studentRoutes.StudentRoutes(api, db)
	paymentRoutes.PaymentRecordRoutes(api, db, defaultAmount)
}
