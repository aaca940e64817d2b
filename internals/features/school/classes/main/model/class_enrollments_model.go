package model

import (
	"time"

	"github.com/google/uuid"
)

const EnrollmentStatusActive = "active"

// ClassEnrollmentModel merepresentasikan tabel `class_enrollments`.
// Unique (class_id, student_id) di DB adalah backstop terakhir terhadap
// race double-enroll; logika aplikasi hanya first line of defense.
type ClassEnrollmentModel struct {
	ClassEnrollmentID        uuid.UUID `json:"class_enrollment_id" gorm:"column:class_enrollment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassEnrollmentClassID   uuid.UUID `json:"class_enrollment_class_id" gorm:"column:class_enrollment_class_id;type:uuid;not null;uniqueIndex:uq_class_enrollments_class_student"`
	ClassEnrollmentStudentID uuid.UUID `json:"class_enrollment_student_id" gorm:"column:class_enrollment_student_id;type:uuid;not null;uniqueIndex:uq_class_enrollments_class_student"`

	ClassEnrollmentStatus string `json:"class_enrollment_status" gorm:"column:class_enrollment_status;type:varchar(20);not null;default:'active'"`

	ClassEnrollmentCreatedAt time.Time `json:"class_enrollment_created_at" gorm:"column:class_enrollment_created_at;not null;autoCreateTime"`
}

func (ClassEnrollmentModel) TableName() string {
	return "class_enrollments"
}
