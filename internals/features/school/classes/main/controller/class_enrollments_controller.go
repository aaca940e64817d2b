package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/school/classes/main/dto"
	classModel "sekolahku_backend/internals/features/school/classes/main/model"
	classSvc "sekolahku_backend/internals/features/school/classes/main/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

type ClassEnrollmentController struct {
	DB *gorm.DB
}

func NewClassEnrollmentController(db *gorm.DB) *ClassEnrollmentController {
	return &ClassEnrollmentController{DB: db}
}

var validateEnrollments = validator.New()

/* ================= Helpers ================= */

func (h *ClassEnrollmentController) ensureStudentExists(tx *gorm.DB, studentID uuid.UUID) error {
	var cnt int64
	if err := tx.Model(&userModel.UserModel{}).
		Where("user_id = ? AND user_deleted_at IS NULL", studentID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi student")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student tidak ditemukan")
	}
	return nil
}

func (h *ClassEnrollmentController) loadAliveClass(tx *gorm.DB, classID uuid.UUID) (*classModel.ClassModel, error) {
	var cls classModel.ClassModel
	if err := tx.First(&cls, "class_id = ? AND class_deleted_at IS NULL", classID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil class")
	}
	return &cls, nil
}

// loadKnownStudents mengambil subset kandidat yang benar-benar ada (alive)
// di tabel users.
func (h *ClassEnrollmentController) loadKnownStudents(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var found []uuid.UUID
	if err := tx.Model(&userModel.UserModel{}).
		Where("user_id IN ? AND user_deleted_at IS NULL", ids).
		Pluck("user_id", &found).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi student")
	}
	set := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		set[id] = struct{}{}
	}
	return set, nil
}

func (h *ClassEnrollmentController) loadEnrolledSet(tx *gorm.DB, classID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := tx.Model(&classModel.ClassEnrollmentModel{}).
		Where("class_enrollment_class_id = ?", classID).
		Pluck("class_enrollment_student_id", &ids).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil enrolment")
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

/* ================= SINGLE ENROLL ================= */

// POST /classes/:id/enrollments
func (h *ClassEnrollmentController) EnrollStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req classDTO.EnrollStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateEnrollments.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var created *classModel.ClassEnrollmentModel

	// Enrolment + counter harus bergerak bareng: satu transaksi.
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.ensureStudentExists(tx, req.StudentID); err != nil {
			return err
		}
		cls, err := h.loadAliveClass(tx, classID)
		if err != nil {
			return err
		}
		enrolled, err := h.loadEnrolledSet(tx, classID)
		if err != nil {
			return err
		}

		_, already := enrolled[req.StudentID]
		switch classSvc.CheckEnrollment(cls.ClassCapacity, cls.ClassCurrentEnrollment, already) {
		case classSvc.EnrollDuplicate:
			return fiber.NewError(fiber.StatusConflict, "Student sudah terdaftar di class ini")
		case classSvc.EnrollCapacityFull:
			return fiber.NewError(fiber.StatusConflict, "Kapasitas class sudah penuh")
		}

		m := &classModel.ClassEnrollmentModel{
			ClassEnrollmentClassID:   classID,
			ClassEnrollmentStudentID: req.StudentID,
			ClassEnrollmentStatus:    classModel.EnrollmentStatusActive,
		}
		if err := tx.Create(m).Error; err != nil {
			// race double-enroll ketangkep unique constraint
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Student sudah terdaftar di class ini")
			}
			return err
		}

		if err := tx.Model(&classModel.ClassModel{}).
			Where("class_id = ?", classID).
			UpdateColumn("class_current_enrollment", gorm.Expr("class_current_enrollment + ?", 1)).Error; err != nil {
			return err
		}

		created = m
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student berhasil di-enroll", classDTO.NewEnrollmentResponse(created))
}

/* ================= BULK ENROLL (best-effort) ================= */

// POST /classes/:id/enrollments/bulk
//
// Best-effort sesuai urutan input: ID yang tidak dikenal di users, duplikat,
// & yang kena kapasitas di-skip ke bucket masing-masing, sisanya masuk.
// new_enrollments di response = jumlah persis yang benar-benar ter-enroll.
func (h *ClassEnrollmentController) BulkEnrollStudents(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req classDTO.BulkEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateEnrollments.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var plan classSvc.BulkEnrollmentPlan
	var skippedUnknown []uuid.UUID

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		cls, err := h.loadAliveClass(tx, classID)
		if err != nil {
			return err
		}
		known, err := h.loadKnownStudents(tx, req.StudentIDs)
		if err != nil {
			return err
		}
		valid, unknown := classSvc.SplitKnownStudents(known, req.StudentIDs)
		skippedUnknown = unknown

		enrolled, err := h.loadEnrolledSet(tx, classID)
		if err != nil {
			return err
		}

		plan = classSvc.PlanBulkEnrollment(cls.ClassCapacity, cls.ClassCurrentEnrollment, enrolled, valid)
		if plan.NewEnrollments == 0 {
			return nil
		}

		rows := make([]classModel.ClassEnrollmentModel, 0, len(plan.Enroll))
		for _, sid := range plan.Enroll {
			rows = append(rows, classModel.ClassEnrollmentModel{
				ClassEnrollmentClassID:   classID,
				ClassEnrollmentStudentID: sid,
				ClassEnrollmentStatus:    classModel.EnrollmentStatusActive,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				// race dengan request lain: batalkan utuh, state lama tetap
				return fiber.NewError(fiber.StatusConflict, "Enrolment bentrok dengan request lain, silakan ulangi")
			}
			return err
		}

		return tx.Model(&classModel.ClassModel{}).
			Where("class_id = ?", classID).
			UpdateColumn("class_current_enrollment", gorm.Expr("class_current_enrollment + ?", plan.NewEnrollments)).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Bulk enrolment selesai", classDTO.BulkEnrollResponse{
		NewEnrollments:   plan.NewEnrollments,
		SkippedDuplicate: plan.SkippedDuplicate,
		SkippedCapacity:  plan.SkippedCapacity,
		SkippedUnknown:   skippedUnknown,
	})
}

/* ================= LIST ================= */

// GET /classes/:id/enrollments
func (h *ClassEnrollmentController) ListEnrollments(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, err := h.loadAliveClass(h.DB, classID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []classModel.ClassEnrollmentModel
	if err := h.DB.
		Where("class_enrollment_class_id = ?", classID).
		Order("class_enrollment_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil enrolment")
	}

	items := make([]*classDTO.EnrollmentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, classDTO.NewEnrollmentResponse(&rows[i]))
	}

	return helper.Success(c, "OK", items)
}
