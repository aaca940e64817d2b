package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/school/sessions/main/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

/* ========== REQUEST DTOs ========== */

type CreateClassSessionRequest struct {
	ClassID    uuid.UUID `json:"class_id"    form:"class_id"    validate:"required"`
	TeacherID  uuid.UUID `json:"teacher_id"  form:"teacher_id"  validate:"required"`
	LocationID uuid.UUID `json:"location_id" form:"location_id" validate:"required"`
	Date       string    `json:"date"        form:"date"        validate:"required"`
	StartTime  string    `json:"start_time"  form:"start_time"  validate:"required"`
	EndTime    string    `json:"end_time"    form:"end_time"    validate:"required"`
	Duration   int       `json:"duration"    form:"duration"    validate:"min=0"`
}

type UpdateClassSessionRequest struct {
	TeacherID  *uuid.UUID `json:"teacher_id"  form:"teacher_id"`
	LocationID *uuid.UUID `json:"location_id" form:"location_id"`
	Date       *string    `json:"date"        form:"date"`
	StartTime  *string    `json:"start_time"  form:"start_time"`
	EndTime    *string    `json:"end_time"    form:"end_time"`
	Duration   *int       `json:"duration"    form:"duration"   validate:"omitempty,min=0"`
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=completed cancelled"`
}

// ParseSessionDate memvalidasi "YYYY-MM-DD".
func ParseSessionDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}
	return t, nil
}

// ValidateSessionTimes memvalidasi jam "HH:mm" dan start < end.
// Format zero-padded 24 jam supaya perbandingan string aman.
func ValidateSessionTimes(startTime, endTime string) error {
	if _, err := time.Parse(timeLayout, startTime); err != nil || len(startTime) != 5 {
		return fiber.NewError(fiber.StatusBadRequest, "start_time tidak valid (format HH:mm)")
	}
	if _, err := time.Parse(timeLayout, endTime); err != nil || len(endTime) != 5 {
		return fiber.NewError(fiber.StatusBadRequest, "end_time tidak valid (format HH:mm)")
	}
	if startTime >= endTime {
		return fiber.NewError(fiber.StatusBadRequest, "start_time harus sebelum end_time")
	}
	return nil
}

/* ========== RESPONSE DTO ========== */

type ClassSessionResponse struct {
	ClassSessionID uuid.UUID `json:"class_session_id"`
	ClassID        uuid.UUID `json:"class_id"`
	TeacherID      uuid.UUID `json:"teacher_id"`
	LocationID     uuid.UUID `json:"location_id"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`

	Status model.SessionStatus `json:"status"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewClassSessionResponse(m *model.ClassSessionModel) *ClassSessionResponse {
	if m == nil {
		return nil
	}
	return &ClassSessionResponse{
		ClassSessionID: m.ClassSessionID,
		ClassID:        m.ClassSessionClassID,
		TeacherID:      m.ClassSessionTeacherID,
		LocationID:     m.ClassSessionLocationID,
		Date:           time.Time(m.ClassSessionDate).Format(dateLayout),
		StartTime:      m.ClassSessionStartTime,
		EndTime:        m.ClassSessionEndTime,
		Duration:       m.ClassSessionDuration,
		Status:         m.ClassSessionStatus,
		CreatedAt:      m.ClassSessionCreatedAt,
		UpdatedAt:      m.ClassSessionUpdatedAt,
	}
}

func (r *CreateClassSessionRequest) ToModel(date time.Time) *model.ClassSessionModel {
	return &model.ClassSessionModel{
		ClassSessionClassID:    r.ClassID,
		ClassSessionTeacherID:  r.TeacherID,
		ClassSessionLocationID: r.LocationID,
		ClassSessionDate:       datatypes.Date(date),
		ClassSessionStartTime:  r.StartTime,
		ClassSessionEndTime:    r.EndTime,
		ClassSessionDuration:   r.Duration,
		ClassSessionStatus:     model.SessionScheduled,
		ClassSessionCreatedAt:  time.Now(),
	}
}
