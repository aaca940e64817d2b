package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feectrl "sekolahku_backend/internals/features/school/fees/controller"
)

func FeeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := feectrl.NewStudentFeeController(db)

	fees := admin.Group("/student-fees")

	fees.Post("/", h.AssignFee)
	fees.Get("/", h.ListFees)
	fees.Post("/:id/payments", h.RecordPayment)
}
