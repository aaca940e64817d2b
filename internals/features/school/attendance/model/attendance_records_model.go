package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// ValidAttendanceStatus untuk validasi manual (validator tag oneof juga dipakai di DTO).
func ValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceRecordModel merepresentasikan tabel `attendance_records`.
// (student_id, class_id, date) unique: mark dua kali = update, bukan duplikat.
// Unique index di DB wajib ada — aplikasi pakai upsert ON CONFLICT ke index ini.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `json:"attendance_record_id" gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey"`

	AttendanceRecordStudentID uuid.UUID      `json:"attendance_record_student_id" gorm:"column:attendance_record_student_id;type:uuid;not null;uniqueIndex:uq_attendance_records_triple"`
	AttendanceRecordClassID   uuid.UUID      `json:"attendance_record_class_id" gorm:"column:attendance_record_class_id;type:uuid;not null;uniqueIndex:uq_attendance_records_triple"`
	AttendanceRecordDate      datatypes.Date `json:"attendance_record_date" gorm:"column:attendance_record_date;type:date;not null;uniqueIndex:uq_attendance_records_triple"`

	AttendanceRecordStatus AttendanceStatus `json:"attendance_record_status" gorm:"column:attendance_record_status;type:varchar(10);not null"`
	AttendanceRecordNotes  *string          `json:"attendance_record_notes,omitempty" gorm:"column:attendance_record_notes;type:text"`

	AttendanceRecordCreatedAt time.Time  `json:"attendance_record_created_at" gorm:"column:attendance_record_created_at;not null;autoCreateTime"`
	AttendanceRecordUpdatedAt *time.Time `json:"attendance_record_updated_at,omitempty" gorm:"column:attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}
