package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/attendance/model"
)

const dateLayout = "2006-01-02"

/* ========== REQUEST DTO ========== */

// MarkAttendanceRequest: mark dua kali untuk (student, class, date) yang sama
// = update record yang ada, bukan baris baru.
type MarkAttendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" form:"student_id" validate:"required"`
	ClassID   uuid.UUID `json:"class_id"   form:"class_id"   validate:"required"`
	Date      string    `json:"date"       form:"date"       validate:"required"`
	Status    string    `json:"status"     form:"status"     validate:"required,oneof=present absent late excused"`
	Notes     *string   `json:"notes"      form:"notes"`
}

func ParseAttendanceDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}
	return t, nil
}

/* ========== RESPONSE DTO ========== */

type AttendanceRecordResponse struct {
	AttendanceRecordID uuid.UUID  `json:"attendance_record_id"`
	StudentID          uuid.UUID  `json:"student_id"`
	ClassID            uuid.UUID  `json:"class_id"`
	Date               string     `json:"date"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

func NewAttendanceRecordResponse(m *model.AttendanceRecordModel) *AttendanceRecordResponse {
	if m == nil {
		return nil
	}
	return &AttendanceRecordResponse{
		AttendanceRecordID: m.AttendanceRecordID,
		StudentID:          m.AttendanceRecordStudentID,
		ClassID:            m.AttendanceRecordClassID,
		Date:               time.Time(m.AttendanceRecordDate).Format(dateLayout),
		Status:             string(m.AttendanceRecordStatus),
		Notes:              m.AttendanceRecordNotes,
		CreatedAt:          m.AttendanceRecordCreatedAt,
		UpdatedAt:          m.AttendanceRecordUpdatedAt,
	}
}
