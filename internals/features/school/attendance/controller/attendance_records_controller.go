package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendanceDTO "sekolahku_backend/internals/features/school/attendance/dto"
	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	classModel "sekolahku_backend/internals/features/school/classes/main/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

var validateAttendance = validator.New()

/* ================= Helpers ================= */

func (h *AttendanceController) ensureStudentExists(studentID uuid.UUID) error {
	var cnt int64
	if err := h.DB.Model(&userModel.UserModel{}).
		Where("user_id = ? AND user_deleted_at IS NULL", studentID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi student")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
	}
	return nil
}

// upsertAttendance menulis record lewat ON CONFLICT pada unique index triple
// (student, class, date): mark ulang = update baris lama, dua request barengan
// tidak pernah menghasilkan dua baris.
func upsertAttendance(db *gorm.DB, m *attendanceModel.AttendanceRecordModel, now time.Time) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_record_student_id"},
			{Name: "attendance_record_class_id"},
			{Name: "attendance_record_date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"attendance_record_status":     m.AttendanceRecordStatus,
			"attendance_record_notes":      m.AttendanceRecordNotes,
			"attendance_record_updated_at": now,
		}),
	}).Create(m).Error
}

/* ================= MARK (upsert) ================= */

// POST /attendance
//
// (student, class, date) unik: mark ulang = update status/notes record lama.
// Upsert ON CONFLICT memakai unique index triple di DB, jadi dua request
// barengan pun tidak pernah menghasilkan dua baris.
func (h *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	var req attendanceDTO.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := attendanceDTO.ParseAttendanceDate(req.Date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ? AND class_deleted_at IS NULL", req.ClassID).
		Count(&cnt).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal validasi class")
	}
	if cnt == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Class tidak ditemukan")
	}
	if err := h.ensureStudentExists(req.StudentID); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := &attendanceModel.AttendanceRecordModel{
		AttendanceRecordStudentID: req.StudentID,
		AttendanceRecordClassID:   req.ClassID,
		AttendanceRecordDate:      datatypes.Date(date),
		AttendanceRecordStatus:    attendanceModel.AttendanceStatus(req.Status),
		AttendanceRecordNotes:     req.Notes,
	}

	if err := upsertAttendance(h.DB, m, time.Now()); err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.Success(c, "Absensi tercatat", attendanceDTO.NewAttendanceRecordResponse(m))
}

/* ================= LIST ================= */

// GET /attendance?class_id=&student_id=&from=&to=&statuses=present,late
func (h *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	tx := h.DB.Model(&attendanceModel.AttendanceRecordModel{})

	if v := strings.TrimSpace(c.Query("class_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		tx = tx.Where("attendance_record_class_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		tx = tx.Where("attendance_record_student_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("from")); v != "" {
		d, err := attendanceDTO.ParseAttendanceDate(v)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		tx = tx.Where("attendance_record_date >= ?", datatypes.Date(d))
	}
	if v := strings.TrimSpace(c.Query("to")); v != "" {
		d, err := attendanceDTO.ParseAttendanceDate(v)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		tx = tx.Where("attendance_record_date <= ?", datatypes.Date(d))
	}
	if v := strings.TrimSpace(c.Query("statuses")); v != "" {
		parts := splitCSVStatuses(v)
		if len(parts) > 0 {
			tx = tx.Where("attendance_record_status = ANY(?)", pq.StringArray(parts))
		}
	}

	var rows []attendanceModel.AttendanceRecordModel
	if err := tx.Order("attendance_record_date ASC, attendance_record_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil absensi")
	}

	items := make([]*attendanceDTO.AttendanceRecordResponse, 0, len(rows))
	for i := range rows {
		items = append(items, attendanceDTO.NewAttendanceRecordResponse(&rows[i]))
	}

	return helper.Success(c, "OK", items)
}

func splitCSVStatuses(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" && attendanceModel.ValidAttendanceStatus(p) {
			out = append(out, p)
		}
	}
	return out
}
