package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	middlewares "sekolahku_backend/internals/middlewares"

	reportctrl "sekolahku_backend/internals/features/school/reports/controller"
)

func ReportRoutes(group fiber.Router, db *gorm.DB) {
	h := reportctrl.NewReportController(db)

	reports := group.Group("/reports", middlewares.ReportRateLimiter())

	reports.Get("/:shape", h.GetReport)
}
