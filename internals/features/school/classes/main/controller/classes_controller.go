package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/school/classes/main/dto"
	classModel "sekolahku_backend/internals/features/school/classes/main/model"
	helper "sekolahku_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validateClasses = validator.New()

/* ================= Helpers ================= */

func (h *ClassController) findAliveClass(classID uuid.UUID) (*classModel.ClassModel, error) {
	var cls classModel.ClassModel
	if err := h.DB.First(&cls, "class_id = ? AND class_deleted_at IS NULL", classID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil class")
	}
	return &cls, nil
}

/* ================= CREATE ================= */

func (h *ClassController) CreateClass(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClasses.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Class berhasil dibuat", classDTO.NewClassResponse(m))
}

/* ================= LIST ================= */

// GET /classes?location_id=&teacher_id=&search=&active=&page=&per_page=
func (h *ClassController) ListClasses(c *fiber.Ctx) error {
	tx := h.DB.Model(&classModel.ClassModel{}).
		Where("class_deleted_at IS NULL")

	if v := strings.TrimSpace(c.Query("location_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "location_id tidak valid")
		}
		tx = tx.Where("class_location_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("teacher_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		tx = tx.Where("class_teacher_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		tx = tx.Where("class_name ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		tx = tx.Where("class_is_active = ?", v == "true" || v == "1")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung class")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var classes []classModel.ClassModel
	if err := tx.Order("class_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&classes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar class")
	}

	items := make([]*classDTO.ClassResponse, 0, len(classes))
	for i := range classes {
		items = append(items, classDTO.NewClassResponse(&classes[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      items,
		"pagination": helper.BuildPagination(paging, total),
	})
}

/* ================= DETAIL ================= */

func (h *ClassController) GetClassByID(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	cls, err := h.findAliveClass(classID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "OK", classDTO.NewClassResponse(cls))
}

/* ================= UPDATE ================= */

func (h *ClassController) UpdateClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateClasses.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	cls, err := h.findAliveClass(classID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if req.ClassName != nil {
		cls.ClassName = *req.ClassName
	}
	if req.ClassTeacherID != nil {
		cls.ClassTeacherID = *req.ClassTeacherID
	}
	if req.ClassLocationID != nil {
		cls.ClassLocationID = *req.ClassLocationID
	}
	if req.ClassCapacity != nil {
		// kapasitas tidak boleh turun di bawah enrolment berjalan
		if *req.ClassCapacity < cls.ClassCurrentEnrollment {
			return helper.Error(c, fiber.StatusBadRequest, "Kapasitas tidak boleh lebih kecil dari enrolment berjalan")
		}
		cls.ClassCapacity = *req.ClassCapacity
	}
	if req.ClassIsActive != nil {
		cls.ClassIsActive = *req.ClassIsActive
	}
	now := time.Now()
	cls.ClassUpdatedAt = &now

	if err := h.DB.Save(cls).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.Success(c, "Class berhasil diperbarui", classDTO.NewClassResponse(cls))
}

/* ================= SOFT DELETE ================= */

func (h *ClassController) SoftDeleteClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	cls, err := h.findAliveClass(classID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	if err := h.DB.Model(cls).
		Updates(map[string]interface{}{
			"class_deleted_at": now,
			"class_is_active":  false,
		}).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus class")
	}

	return helper.Success(c, "Class berhasil dihapus", fiber.Map{"class_id": classID})
}
