package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/main/model"
)

/* ========== REQUEST DTOs ========== */

type EnrollStudentRequest struct {
	StudentID uuid.UUID `json:"student_id" form:"student_id" validate:"required"`
}

type BulkEnrollRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" form:"student_ids" validate:"required,min=1,dive,required"`
}

/* ========== RESPONSE DTOs ========== */

type EnrollmentResponse struct {
	ClassEnrollmentID        uuid.UUID `json:"class_enrollment_id"`
	ClassEnrollmentClassID   uuid.UUID `json:"class_enrollment_class_id"`
	ClassEnrollmentStudentID uuid.UUID `json:"class_enrollment_student_id"`
	ClassEnrollmentStatus    string    `json:"class_enrollment_status"`
	ClassEnrollmentCreatedAt time.Time `json:"class_enrollment_created_at"`
}

// BulkEnrollResponse melaporkan hasil bulk best-effort: new_enrollments
// PERSIS jumlah yang benar-benar masuk, bukan jumlah yang diminta.
type BulkEnrollResponse struct {
	NewEnrollments   int         `json:"new_enrollments"`
	SkippedDuplicate []uuid.UUID `json:"skipped_duplicate,omitempty"`
	SkippedCapacity  []uuid.UUID `json:"skipped_capacity,omitempty"`
	SkippedUnknown   []uuid.UUID `json:"skipped_unknown,omitempty"`
}

func NewEnrollmentResponse(m *model.ClassEnrollmentModel) *EnrollmentResponse {
	if m == nil {
		return nil
	}
	return &EnrollmentResponse{
		ClassEnrollmentID:        m.ClassEnrollmentID,
		ClassEnrollmentClassID:   m.ClassEnrollmentClassID,
		ClassEnrollmentStudentID: m.ClassEnrollmentStudentID,
		ClassEnrollmentStatus:    m.ClassEnrollmentStatus,
		ClassEnrollmentCreatedAt: m.ClassEnrollmentCreatedAt,
	}
}
