package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tuition_backend/internals/constants"
	"tuition_backend/internals/features/tuition/students/controller"
	"tuition_backend/internals/features/tuition/students/repository"
	"tuition_backend/internals/features/tuition/students/service"
)

// StudentRoutes: /api/students
func StudentRoutes(api fiber.Router, db *gorm.DB) {
	svc := service.NewStudentService(repository.NewStudentRepository(db))
	h := controller.NewStudentHandler(svc)

	grp := api.Group(constants.StudentsPath)
	{
		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Post("/", h.Create)
		grp.Put("/:id", h.Update)
		grp.Delete("/:id", h.Delete)
	}
}
