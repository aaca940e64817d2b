package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionctrl "sekolahku_backend/internals/features/school/sessions/main/controller"
)

func SessionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := sessionctrl.NewClassSessionController(db)

	sessions := admin.Group("/class-sessions")

	sessions.Post("/", h.CreateSession)
	sessions.Get("/", h.ListSessions)
	sessions.Put("/:id", h.UpdateSession)
	sessions.Patch("/:id/status", h.UpdateSessionStatus)
}
