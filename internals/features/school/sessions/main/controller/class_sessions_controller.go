package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/main/model"
	sessionDTO "sekolahku_backend/internals/features/school/sessions/main/dto"
	sessionModel "sekolahku_backend/internals/features/school/sessions/main/model"
	sessionSvc "sekolahku_backend/internals/features/school/sessions/main/service"
	helper "sekolahku_backend/internals/helpers"
)

type ClassSessionController struct {
	DB *gorm.DB
}

func NewClassSessionController(db *gorm.DB) *ClassSessionController {
	return &ClassSessionController{DB: db}
}

var validateSessions = validator.New()

/* ================= Helpers ================= */

func (h *ClassSessionController) ensureClassExists(tx *gorm.DB, classID uuid.UUID) error {
	var cnt int64
	if err := tx.Model(&classModel.ClassModel{}).
		Where("class_id = ? AND class_deleted_at IS NULL", classID).
		Count(&cnt).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal validasi class")
	}
	if cnt == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Class tidak ditemukan")
	}
	return nil
}

// fetchSlotSessions mengambil sesi scheduled yang se-slot
// (class, location, date) — input untuk deteksi bentrok.
func (h *ClassSessionController) fetchSlotSessions(tx *gorm.DB, classID, locationID uuid.UUID, date time.Time) ([]sessionModel.ClassSessionModel, error) {
	var rows []sessionModel.ClassSessionModel
	if err := tx.
		Where("class_session_class_id = ? AND class_session_location_id = ? AND class_session_date = ? AND class_session_status = ?",
			classID, locationID, datatypes.Date(date), sessionModel.SessionScheduled).
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi existing")
	}
	return rows, nil
}

func conflictError(with *sessionModel.ClassSessionModel) error {
	return fiber.NewError(fiber.StatusConflict,
		fmt.Sprintf("Bentrok jadwal: sesi %s sudah terpasang %s–%s pada tanggal yang sama",
			with.ClassSessionID, with.ClassSessionStartTime, with.ClassSessionEndTime))
}

/* ================= CREATE (booking) ================= */

func (h *ClassSessionController) CreateSession(c *fiber.Ctx) error {
	var req sessionDTO.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateSessions.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := sessionDTO.ParseSessionDate(req.Date)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := sessionDTO.ValidateSessionTimes(req.StartTime, req.EndTime); err != nil {
		return helper.FromFiberError(c, err)
	}

	var created *sessionModel.ClassSessionModel

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.ensureClassExists(tx, req.ClassID); err != nil {
			return err
		}

		existing, err := h.fetchSlotSessions(tx, req.ClassID, req.LocationID, date)
		if err != nil {
			return err
		}

		decision := sessionSvc.CheckBookingConflict(existing, sessionSvc.BookingCandidate{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if decision.Conflict {
			return conflictError(decision.With)
		}

		m := req.ToModel(date)
		if err := tx.Create(m).Error; err != nil {
			// race double-booking ketangkep constraint slot unik
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Bentrok jadwal: slot sudah terisi")
			}
			return err
		}
		created = m
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Sesi berhasil dijadwalkan", sessionDTO.NewClassSessionResponse(created))
}

/* ================= UPDATE (reschedule) ================= */

func (h *ClassSessionController) UpdateSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req sessionDTO.UpdateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateSessions.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var updated *sessionModel.ClassSessionModel

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var m sessionModel.ClassSessionModel
		if err := tx.First(&m, "class_session_id = ?", sessionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
			}
			return err
		}
		if m.ClassSessionStatus != sessionModel.SessionScheduled {
			return fiber.NewError(fiber.StatusConflict, "Sesi yang sudah completed/cancelled tidak bisa dijadwal ulang")
		}

		if req.TeacherID != nil {
			m.ClassSessionTeacherID = *req.TeacherID
		}
		if req.LocationID != nil {
			m.ClassSessionLocationID = *req.LocationID
		}
		if req.Date != nil {
			d, err := sessionDTO.ParseSessionDate(*req.Date)
			if err != nil {
				return err
			}
			m.ClassSessionDate = datatypes.Date(d)
		}
		if req.StartTime != nil {
			m.ClassSessionStartTime = *req.StartTime
		}
		if req.EndTime != nil {
			m.ClassSessionEndTime = *req.EndTime
		}
		if req.Duration != nil {
			m.ClassSessionDuration = *req.Duration
		}
		if err := sessionDTO.ValidateSessionTimes(m.ClassSessionStartTime, m.ClassSessionEndTime); err != nil {
			return err
		}

		existing, err := h.fetchSlotSessions(tx, m.ClassSessionClassID, m.ClassSessionLocationID, time.Time(m.ClassSessionDate))
		if err != nil {
			return err
		}
		decision := sessionSvc.CheckBookingConflict(existing, sessionSvc.BookingCandidate{
			StartTime: m.ClassSessionStartTime,
			EndTime:   m.ClassSessionEndTime,
			ExcludeID: m.ClassSessionID, // abaikan dirinya sendiri
		})
		if decision.Conflict {
			return conflictError(decision.With)
		}

		now := time.Now()
		m.ClassSessionUpdatedAt = &now
		if err := tx.Save(&m).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "Bentrok jadwal: slot sudah terisi")
			}
			return err
		}
		updated = &m
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Sesi berhasil diperbarui", sessionDTO.NewClassSessionResponse(updated))
}

/* ================= STATUS ================= */

// PATCH /class-sessions/:id/status
// Transisi valid: scheduled → completed | cancelled. Tidak pernah dibuka lagi.
func (h *ClassSessionController) UpdateSessionStatus(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req sessionDTO.UpdateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateSessions.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var m sessionModel.ClassSessionModel
	if err := h.DB.First(&m, "class_session_id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	if m.ClassSessionStatus != sessionModel.SessionScheduled {
		return helper.Error(c, fiber.StatusConflict, "Status sesi sudah final")
	}

	now := time.Now()
	m.ClassSessionStatus = sessionModel.SessionStatus(req.Status)
	m.ClassSessionUpdatedAt = &now
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.Success(c, "Status sesi diperbarui", sessionDTO.NewClassSessionResponse(&m))
}

/* ================= LIST ================= */

// GET /class-sessions?class_id=&location_id=&teacher_id=&status=&from=&to=
func (h *ClassSessionController) ListSessions(c *fiber.Ctx) error {
	tx := h.DB.Model(&sessionModel.ClassSessionModel{})

	if v := strings.TrimSpace(c.Query("class_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		tx = tx.Where("class_session_class_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("location_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "location_id tidak valid")
		}
		tx = tx.Where("class_session_location_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("teacher_id")); v != "" && v != "all" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		tx = tx.Where("class_session_teacher_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" && v != "all" {
		tx = tx.Where("class_session_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("from")); v != "" {
		d, err := sessionDTO.ParseSessionDate(v)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		tx = tx.Where("class_session_date >= ?", datatypes.Date(d))
	}
	if v := strings.TrimSpace(c.Query("to")); v != "" {
		d, err := sessionDTO.ParseSessionDate(v)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		tx = tx.Where("class_session_date <= ?", datatypes.Date(d))
	}

	// series selalu urut waktu naik
	var rows []sessionModel.ClassSessionModel
	if err := tx.Order("class_session_date ASC, class_session_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	items := make([]*sessionDTO.ClassSessionResponse, 0, len(rows))
	for i := range rows {
		items = append(items, sessionDTO.NewClassSessionResponse(&rows[i]))
	}

	return helper.Success(c, "OK", items)
}
