package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tuition_backend/internals/constants"
	"tuition_backend/internals/features/tuition/payment_records/controller"
	"tuition_backend/internals/features/tuition/payment_records/repository"
	"tuition_backend/internals/features/tuition/payment_records/service"
)

// PaymentRecordRoutes: /api/paymentrecords
// Route statis (/generate, /student/...) didaftarkan sebelum /:id.
func PaymentRecordRoutes(api fiber.Router, db *gorm.DB, defaultAmount *decimal.Decimal) {
	svc := service.NewPaymentRecordService(repository.NewPaymentRecordRepository(db))
	h := controller.NewPaymentRecordHandler(svc, defaultAmount)

	grp := api.Group(constants.PaymentRecordsPath)
	{
		grp.Get("/", h.List)
		grp.Post("/", h.Create)
		grp.Post("/generate", h.GenerateMonthly)

		grp.Get("/student/:studentId", h.ListByStudent)
		grp.Get("/student/:studentId/summary", h.SummaryByStudent)

		grp.Get("/:id", h.Get)
		grp.Put("/:id/status", h.UpdateStatus)
		grp.Patch("/:id/status", h.UpdateStatus)
		grp.Delete("/:id", h.Delete)
	}
}
