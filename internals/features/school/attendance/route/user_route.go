package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendancectrl "sekolahku_backend/internals/features/school/attendance/controller"
)

// AttendanceUserRoutes: marking oleh teacher, listing oleh user terautentikasi.
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB) {
	h := attendancectrl.NewAttendanceController(db)

	attendance := user.Group("/attendance")

	attendance.Post("/", h.MarkAttendance)
	attendance.Get("/", h.ListAttendance)
}
