package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	FeeStatusPaid    = "paid"
	FeeStatusPartial = "partial"
	FeeStatusPending = "pending"
	FeeStatusOverdue = "overdue"
)

// StudentFeeModel merepresentasikan tabel `student_fees`.
// Ledger keuangan: baris tidak pernah dihapus, hanya paid_amount yang
// bertambah lewat pencatatan pembayaran. Kolom status hanya snapshot —
// nilai otoritatifnya diturunkan ulang dari amount/paid_amount/due_date
// (DeriveFeeStatus) setiap kali dilaporkan.
type StudentFeeModel struct {
	StudentFeeID uuid.UUID `json:"student_fee_id" gorm:"column:student_fee_id;type:uuid;default:gen_random_uuid();primaryKey"`

	StudentFeeStudentID   uuid.UUID `json:"student_fee_student_id" gorm:"column:student_fee_student_id;type:uuid;not null"`
	StudentFeeClassID     uuid.UUID `json:"student_fee_class_id" gorm:"column:student_fee_class_id;type:uuid;not null"`
	StudentFeeStructureID uuid.UUID `json:"student_fee_structure_id" gorm:"column:student_fee_structure_id;type:uuid;not null"`

	StudentFeeAmount     float64        `json:"student_fee_amount" gorm:"column:student_fee_amount;type:numeric(12,2);not null"`
	StudentFeePaidAmount float64        `json:"student_fee_paid_amount" gorm:"column:student_fee_paid_amount;type:numeric(12,2);not null;default:0"`
	StudentFeeDueDate    datatypes.Date `json:"student_fee_due_date" gorm:"column:student_fee_due_date;type:date;not null"`

	StudentFeeStatus string `json:"student_fee_status" gorm:"column:student_fee_status;type:varchar(10);not null;default:'pending'"`

	StudentFeeCreatedAt time.Time  `json:"student_fee_created_at" gorm:"column:student_fee_created_at;not null;autoCreateTime"`
	StudentFeeUpdatedAt *time.Time `json:"student_fee_updated_at,omitempty" gorm:"column:student_fee_updated_at"`
}

func (StudentFeeModel) TableName() string {
	return "student_fees"
}

// DeriveFeeStatus menurunkan status dari jumlah, bukan dari kolom status.
// paidAmount > amount tidak di-clamp (kelebihan bayar tetap "paid").
func DeriveFeeStatus(amount, paidAmount float64, dueDate, today time.Time) string {
	switch {
	case amount > 0 && paidAmount >= amount:
		return FeeStatusPaid
	case paidAmount > 0:
		return FeeStatusPartial
	case dueDate.Before(truncateDay(today)):
		return FeeStatusOverdue
	default:
		return FeeStatusPending
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
