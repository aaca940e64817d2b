package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/main/model"
)

/* ========== REQUEST DTOs ========== */

type CreateClassRequest struct {
	ClassName       string    `json:"class_name"        form:"class_name"        validate:"required,min=2,max=120"`
	ClassTeacherID  uuid.UUID `json:"class_teacher_id"  form:"class_teacher_id"  validate:"required"`
	ClassLocationID uuid.UUID `json:"class_location_id" form:"class_location_id" validate:"required"`
	ClassCapacity   int       `json:"class_capacity"    form:"class_capacity"    validate:"min=0"`
	ClassIsActive   *bool     `json:"class_is_active"   form:"class_is_active"`
}

type UpdateClassRequest struct {
	ClassName       *string    `json:"class_name"        form:"class_name"        validate:"omitempty,min=2,max=120"`
	ClassTeacherID  *uuid.UUID `json:"class_teacher_id"  form:"class_teacher_id"`
	ClassLocationID *uuid.UUID `json:"class_location_id" form:"class_location_id"`
	ClassCapacity   *int       `json:"class_capacity"    form:"class_capacity"    validate:"omitempty,min=0"`
	ClassIsActive   *bool      `json:"class_is_active"   form:"class_is_active"`
}

/* ========== RESPONSE DTO ========== */

type ClassResponse struct {
	ClassID         uuid.UUID `json:"class_id"`
	ClassName       string    `json:"class_name"`
	ClassTeacherID  uuid.UUID `json:"class_teacher_id"`
	ClassLocationID uuid.UUID `json:"class_location_id"`

	ClassCapacity          int  `json:"class_capacity"`
	ClassCurrentEnrollment int  `json:"class_current_enrollment"`
	ClassIsActive          bool `json:"class_is_active"`

	ClassCreatedAt time.Time  `json:"class_created_at"`
	ClassUpdatedAt *time.Time `json:"class_updated_at,omitempty"`
}

/* ========== HELPER: KONVERSI MODEL <-> DTO ========== */

func NewClassResponse(m *model.ClassModel) *ClassResponse {
	if m == nil {
		return nil
	}
	return &ClassResponse{
		ClassID:                m.ClassID,
		ClassName:              m.ClassName,
		ClassTeacherID:         m.ClassTeacherID,
		ClassLocationID:        m.ClassLocationID,
		ClassCapacity:          m.ClassCapacity,
		ClassCurrentEnrollment: m.ClassCurrentEnrollment,
		ClassIsActive:          m.ClassIsActive,
		ClassCreatedAt:         m.ClassCreatedAt,
		ClassUpdatedAt:         m.ClassUpdatedAt,
	}
}

func (r *CreateClassRequest) ToModel() *model.ClassModel {
	m := &model.ClassModel{
		ClassName:       r.ClassName,
		ClassTeacherID:  r.ClassTeacherID,
		ClassLocationID: r.ClassLocationID,
		ClassCapacity:   r.ClassCapacity,
		ClassIsActive:   true, // default
		ClassCreatedAt:  time.Now(),
	}
	if r.ClassIsActive != nil {
		m.ClassIsActive = *r.ClassIsActive
	}
	return m
}
