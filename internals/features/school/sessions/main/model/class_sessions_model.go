package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   Enum status sesi (menyesuaikan class_session_status_enum)
   ======================================================= */

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

/* =======================================================
   ClassSessionModel — map ke tabel class_sessions
   ======================================================= */

// Jam disimpan "HH:mm" (varchar 5, 24 jam). Interval dipakai half-open
// [start, end): dua sesi yang cuma bersentuhan di batas bukan bentrok.
// Unique (class, location, date, start_time) di DB menjadi backstop race
// double-booking (lihat helper.MapPGError).
type ClassSessionModel struct {
	ClassSessionID uuid.UUID `json:"class_session_id" gorm:"column:class_session_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassSessionClassID    uuid.UUID `json:"class_session_class_id" gorm:"column:class_session_class_id;type:uuid;not null;uniqueIndex:uq_class_sessions_slot"`
	ClassSessionTeacherID  uuid.UUID `json:"class_session_teacher_id" gorm:"column:class_session_teacher_id;type:uuid;not null"`
	ClassSessionLocationID uuid.UUID `json:"class_session_location_id" gorm:"column:class_session_location_id;type:uuid;not null;uniqueIndex:uq_class_sessions_slot"`

	ClassSessionDate      datatypes.Date `json:"class_session_date" gorm:"column:class_session_date;type:date;not null;uniqueIndex:uq_class_sessions_slot"`
	ClassSessionStartTime string         `json:"class_session_start_time" gorm:"column:class_session_start_time;type:varchar(5);not null;uniqueIndex:uq_class_sessions_slot"`
	ClassSessionEndTime   string         `json:"class_session_end_time" gorm:"column:class_session_end_time;type:varchar(5);not null"`
	ClassSessionDuration  int            `json:"class_session_duration" gorm:"column:class_session_duration;not null;default:0"` // menit

	ClassSessionStatus SessionStatus `json:"class_session_status" gorm:"column:class_session_status;type:varchar(20);not null;default:'scheduled'"`

	ClassSessionCreatedAt time.Time  `json:"class_session_created_at" gorm:"column:class_session_created_at;not null;autoCreateTime"`
	ClassSessionUpdatedAt *time.Time `json:"class_session_updated_at,omitempty" gorm:"column:class_session_updated_at"`
}

func (ClassSessionModel) TableName() string {
	return "class_sessions"
}
