package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"

	attendanceRoute "sekolahku_backend/internals/features/school/attendance/route"
	classRoute "sekolahku_backend/internals/features/school/classes/main/route"
	feeRoute "sekolahku_backend/internals/features/school/fees/route"
	reportRoute "sekolahku_backend/internals/features/school/reports/route"
	sessionRoute "sekolahku_backend/internals/features/school/sessions/main/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	jwtSecret := configs.JWTSecret

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===================== ADMIN / TEACHER =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("manajemen sekolah"),
			constants.RoleAdmin, constants.RoleTeacher),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Class routes...")
	classRoute.ClassAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Session routes...")
	sessionRoute.SessionAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceUserRoutes(user, db)

	log.Println("[INFO] Mounting Fee routes...")
	feeRoute.FeeAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Report routes...")
	reportRoute.ReportRoutes(admin, db)
}
