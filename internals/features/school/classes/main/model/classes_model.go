package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassModel merepresentasikan tabel `classes`.
//
// Invariant: class_current_enrollment == jumlah baris alive di
// class_enrollments untuk class ini, dan selalu <= class_capacity.
// Counter dan set-nya hanya boleh berubah bareng dalam satu transaksi
// (lihat ClassEnrollmentController).
type ClassModel struct {
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassName       string    `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`
	ClassTeacherID  uuid.UUID `json:"class_teacher_id" gorm:"column:class_teacher_id;type:uuid;not null"`   // FK -> users(user_id)
	ClassLocationID uuid.UUID `json:"class_location_id" gorm:"column:class_location_id;type:uuid;not null"` // FK -> locations(location_id)

	ClassCapacity          int `json:"class_capacity" gorm:"column:class_capacity;not null;default:0"`
	ClassCurrentEnrollment int `json:"class_current_enrollment" gorm:"column:class_current_enrollment;not null;default:0"`

	ClassIsActive bool `json:"class_is_active" gorm:"column:class_is_active;not null;default:true"`

	ClassCreatedAt time.Time  `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt *time.Time `json:"class_updated_at,omitempty" gorm:"column:class_updated_at"`
	ClassDeletedAt *time.Time `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}
