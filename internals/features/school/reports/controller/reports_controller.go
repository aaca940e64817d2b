package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reportSvc "sekolahku_backend/internals/features/school/reports/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ReportController struct {
	DB     *gorm.DB
	Engine *reportSvc.AggregationService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		DB:     db,
		Engine: reportSvc.NewAggregationService(db),
	}
}

/* ================= Scope builder ================= */

// buildScope menyusun scope dari query + token. Role teacher dikunci ke
// teacher_id miliknya di sini — agregasi menerima scope sebagai data polos,
// tidak pernah branching per role di dalam formula.
func buildScope(c *fiber.Ctx) (reportSvc.ReportScope, error) {
	scope := reportSvc.ReportScope{}

	if v := strings.TrimSpace(c.Query("class_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return scope, fiber.NewError(fiber.StatusBadRequest, "class_id tidak valid")
		}
		scope.ClassID = &id
	}
	if v := strings.TrimSpace(c.Query("location_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return scope, fiber.NewError(fiber.StatusBadRequest, "location_id tidak valid")
		}
		scope.LocationID = &id
	}
	if v := strings.TrimSpace(c.Query("teacher_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return scope, fiber.NewError(fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		scope.TeacherID = &id
	}
	scope.Search = strings.TrimSpace(c.Query("search"))

	if helperAuth.IsTeacher(c) {
		teacherID, err := helperAuth.GetTeacherIDFromToken(c)
		if err != nil {
			return scope, err
		}
		if scope.TeacherID != nil && *scope.TeacherID != teacherID {
			return scope, fiber.NewError(fiber.StatusForbidden, "Teacher hanya boleh melihat laporan kelasnya sendiri")
		}
		scope.TeacherID = &teacherID
	}

	return scope, nil
}

/* ================= GET /reports/:shape ================= */

func (h *ReportController) GetReport(c *fiber.Ctx) error {
	shape := strings.TrimSpace(c.Params("shape"))

	scope, err := buildScope(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	window := reportSvc.ResolveTimeWindow(
		strings.TrimSpace(c.Query("from")),
		strings.TrimSpace(c.Query("to")),
		strings.TrimSpace(c.Query("range")),
		time.Now(),
	)

	classes, err := h.Engine.ScopedClasses(scope)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas untuk laporan")
	}

	// fail-closed: satu sub-query gagal = laporan gagal utuh
	metrics, err := h.Engine.ClassMetrics(classes, window)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung metrik laporan")
	}

	data, err := reportSvc.AssembleReport(shape, metrics)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "OK", fiber.Map{
		"shape":  shape,
		"window": window,
		"report": data,
	})
}
