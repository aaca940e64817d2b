package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel `users` (profil dikelola layanan lain;
// di sini hanya kolom yang dipakai enrolment & scope).
type UserModel struct {
	UserID        uuid.UUID  `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserName      string     `json:"user_name" gorm:"column:user_name;type:varchar(120);not null"`
	UserRole      string     `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:'student'"`
	UserIsActive  bool       `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`
	UserCreatedAt time.Time  `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserDeletedAt *time.Time `json:"user_deleted_at,omitempty" gorm:"column:user_deleted_at"`
}

func (UserModel) TableName() string {
	return "users"
}
