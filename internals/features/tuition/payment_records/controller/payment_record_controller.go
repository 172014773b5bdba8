package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"tuition_backend/internals/features/tuition/payment_records/dto"
	"tuition_backend/internals/features/tuition/payment_records/service"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/dbtime"
)

type PaymentRecordHandler struct {
	Svc *service.PaymentRecordService

	// Nominal default untuk /generate kalau body tidak mengirim amount
	DefaultAmount *decimal.Decimal
}

func NewPaymentRecordHandler(svc *service.PaymentRecordService, defaultAmount *decimal.Decimal) *PaymentRecordHandler {
	return &PaymentRecordHandler{Svc: svc, DefaultAmount: defaultAmount}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// GET /api/paymentrecords?studentId=&isPaid=&year=&month=&overdue=
func (h *PaymentRecordHandler) List(c *fiber.Ctx) error {
	var q dto.ListPaymentRecordQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	out, err := h.Svc.List(c.UserContext(), q, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment records retrieved", out)
}

// GET /api/paymentrecords/student/:studentId
func (h *PaymentRecordHandler) ListByStudent(c *fiber.Ctx) error {
	sid, err := parseID(c, "studentId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.ListByStudent(c.UserContext(), sid, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment records retrieved", out)
}

// GET /api/paymentrecords/student/:studentId/summary
func (h *PaymentRecordHandler) SummaryByStudent(c *fiber.Ctx) error {
	sid, err := parseID(c, "studentId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.SummaryByStudent(c.UserContext(), sid, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment summary retrieved", out)
}

// GET /api/paymentrecords/:id
func (h *PaymentRecordHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := h.Svc.Get(c.UserContext(), id, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment record retrieved", out)
}

// POST /api/paymentrecords
func (h *PaymentRecordHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.Svc.Create(c.UserContext(), in, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "payment record created", out)
}

// PUT|PATCH /api/paymentrecords/:id/status
func (h *PaymentRecordHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.Svc.UpdateStatus(c.UserContext(), id, in, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "payment status updated", out)
}

// DELETE /api/paymentrecords/:id
func (h *PaymentRecordHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "payment record deleted", fiber.Map{"id": id})
}

// POST /api/paymentrecords/generate?year=&month=   body (opsional): {"amount": 150}
func (h *PaymentRecordHandler) GenerateMonthly(c *fiber.Ctx) error {
	var in dto.GenerateMonthlyRequest
	if err := c.QueryParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	if len(c.Body()) > 0 {
		var body struct {
			Amount *decimal.Decimal `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
		}
		in.Amount = body.Amount
	}
	if in.Amount == nil && h.DefaultAmount != nil {
		a := *h.DefaultAmount
		in.Amount = &a
	}

	out, err := h.Svc.GenerateMonthly(c.UserContext(), in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "monthly payment records generated", out)
}
