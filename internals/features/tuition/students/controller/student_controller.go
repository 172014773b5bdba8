package controller

import (
	"github.com/gofiber/fiber/v2"

	"tuition_backend/internals/features/tuition/students/dto"
	"tuition_backend/internals/features/tuition/students/service"
	helper "tuition_backend/internals/helpers"
	"tuition_backend/internals/helpers/dbtime"
)

type StudentHandler struct {
	Svc *service.StudentService
}

func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{Svc: svc}
}

// parseID: id path param harus bilangan bulat positif.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// GET /api/students?include=payments
func (h *StudentHandler) List(c *fiber.Ctx) error {
	var q dto.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	out, err := h.Svc.List(c.UserContext(), q, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "students retrieved", out)
}

// GET /api/students/:id?include=payments
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var q dto.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	out, err := h.Svc.Get(c.UserContext(), id, q.WithPayments(), dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "student retrieved", out)
}

// POST /api/students
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.Svc.Create(c.UserContext(), in, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "student created", out)
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var in dto.UpdateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.Svc.Update(c.UserContext(), id, in, dbtime.Now(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "student updated", out)
}

// DELETE /api/students/:id (tagihan siswa ikut terhapus)
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "student deleted", fiber.Map{"id": id})
}
