package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/main/model"
	feeDTO "sekolahku_backend/internals/features/school/fees/dto"
	feeModel "sekolahku_backend/internals/features/school/fees/model"
	helper "sekolahku_backend/internals/helpers"
)

type StudentFeeController struct {
	DB *gorm.DB
}

func NewStudentFeeController(db *gorm.DB) *StudentFeeController {
	return &StudentFeeController{DB: db}
}

var validateFees = validator.New()

/* ================= ASSIGN ================= */

func (h *StudentFeeController) AssignFee(c *fiber.Ctx) error {
	var req feeDTO.AssignStudentFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateFees.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	dueDate, err := feeDTO.ParseFeeDate(req.DueDate)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var cnt int64
	if err := h.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ? AND class_deleted_at IS NULL", req.ClassID).
		Count(&cnt).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal validasi class")
	}
	if cnt == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Class tidak ditemukan")
	}

	m := req.ToModel(dueDate)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tagihan berhasil dibuat", feeDTO.NewStudentFeeResponse(m, time.Now()))
}

/* ================= RECORD PAYMENT ================= */

// POST /student-fees/:id/payments
//
// Ledger: baris fee tidak pernah dihapus; pembayaran hanya menambah
// paid_amount. paid > amount dibiarkan (tidak di-clamp) — status derived
// tetap "paid".
func (h *StudentFeeController) RecordPayment(c *fiber.Ctx) error {
	feeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req feeDTO.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateFees.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var updated *feeModel.StudentFeeModel

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var m feeModel.StudentFeeModel
		if err := tx.First(&m, "student_fee_id = ?", feeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Tagihan tidak ditemukan")
			}
			return err
		}

		now := time.Now()
		m.StudentFeePaidAmount += req.Amount
		// snapshot; nilai otoritatif tetap hasil DeriveFeeStatus saat reporting
		m.StudentFeeStatus = feeModel.DeriveFeeStatus(m.StudentFeeAmount, m.StudentFeePaidAmount, time.Time(m.StudentFeeDueDate), now)
		m.StudentFeeUpdatedAt = &now

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		updated = &m
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Pembayaran tercatat", feeDTO.NewStudentFeeResponse(updated, time.Now()))
}

/* ================= LIST ================= */

// GET /student-fees?class_id=&student_id=&status=
func (h *StudentFeeController) ListFees(c *fiber.Ctx) error {
	tx := h.DB.Model(&feeModel.StudentFeeModel{})

	if v := strings.TrimSpace(c.Query("class_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		tx = tx.Where("student_fee_class_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		tx = tx.Where("student_fee_student_id = ?", id)
	}

	var rows []feeModel.StudentFeeModel
	if err := tx.Order("student_fee_due_date ASC, student_fee_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil tagihan")
	}

	// filter status pakai nilai derived, bukan kolom snapshot
	statusFilter := strings.TrimSpace(c.Query("status"))
	now := time.Now()
	items := make([]*feeDTO.StudentFeeResponse, 0, len(rows))
	for i := range rows {
		resp := feeDTO.NewStudentFeeResponse(&rows[i], now)
		if statusFilter != "" && statusFilter != "all" && resp.Status != statusFilter {
			continue
		}
		items = append(items, resp)
	}

	return helper.Success(c, "OK", items)
}
