package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/school/fees/model"
)

const dateLayout = "2006-01-02"

/* ========== REQUEST DTOs ========== */

type AssignStudentFeeRequest struct {
	StudentID      uuid.UUID `json:"student_id"        form:"student_id"        validate:"required"`
	ClassID        uuid.UUID `json:"class_id"          form:"class_id"          validate:"required"`
	FeeStructureID uuid.UUID `json:"fee_structure_id"  form:"fee_structure_id"  validate:"required"`
	Amount         float64   `json:"amount"            form:"amount"            validate:"required,gt=0"`
	DueDate        string    `json:"due_date"          form:"due_date"          validate:"required"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" form:"amount" validate:"required,gt=0"`
}

func ParseFeeDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}
	return t, nil
}

/* ========== RESPONSE DTO ========== */

type StudentFeeResponse struct {
	StudentFeeID   uuid.UUID `json:"student_fee_id"`
	StudentID      uuid.UUID `json:"student_id"`
	ClassID        uuid.UUID `json:"class_id"`
	FeeStructureID uuid.UUID `json:"fee_structure_id"`

	Amount     float64 `json:"amount"`
	PaidAmount float64 `json:"paid_amount"`
	DueDate    string  `json:"due_date"`

	// Status diturunkan ulang dari amount/paid/due saat response dibuat —
	// kolom status di DB cuma snapshot.
	Status string `json:"status"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewStudentFeeResponse(m *model.StudentFeeModel, now time.Time) *StudentFeeResponse {
	if m == nil {
		return nil
	}
	return &StudentFeeResponse{
		StudentFeeID:   m.StudentFeeID,
		StudentID:      m.StudentFeeStudentID,
		ClassID:        m.StudentFeeClassID,
		FeeStructureID: m.StudentFeeStructureID,
		Amount:         m.StudentFeeAmount,
		PaidAmount:     m.StudentFeePaidAmount,
		DueDate:        time.Time(m.StudentFeeDueDate).Format(dateLayout),
		Status:         model.DeriveFeeStatus(m.StudentFeeAmount, m.StudentFeePaidAmount, time.Time(m.StudentFeeDueDate), now),
		CreatedAt:      m.StudentFeeCreatedAt,
		UpdatedAt:      m.StudentFeeUpdatedAt,
	}
}

func (r *AssignStudentFeeRequest) ToModel(dueDate time.Time) *model.StudentFeeModel {
	return &model.StudentFeeModel{
		StudentFeeStudentID:   r.StudentID,
		StudentFeeClassID:     r.ClassID,
		StudentFeeStructureID: r.FeeStructureID,
		StudentFeeAmount:      r.Amount,
		StudentFeePaidAmount:  0,
		StudentFeeDueDate:     datatypes.Date(dueDate),
		StudentFeeStatus:      model.FeeStatusPending,
		StudentFeeCreatedAt:   time.Now(),
	}
}
