package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classctrl "sekolahku_backend/internals/features/school/classes/main/controller"
)

func ClassAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := classctrl.NewClassController(db)
	e := classctrl.NewClassEnrollmentController(db)

	classes := admin.Group("/classes")

	classes.Post("/", h.CreateClass)
	classes.Get("/", h.ListClasses)
	classes.Get("/:id", h.GetClassByID)
	classes.Put("/:id", h.UpdateClass)
	classes.Delete("/:id", h.SoftDeleteClass)

	classes.Post("/:id/enrollments", e.EnrollStudent)
	classes.Post("/:id/enrollments/bulk", e.BulkEnrollStudents)
	classes.Get("/:id/enrollments", e.ListEnrollments)
}
