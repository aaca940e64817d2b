package service

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
	classModel "sekolahku_backend/internals/features/school/classes/main/model"
	feeModel "sekolahku_backend/internals/features/school/fees/model"
	sessionModel "sekolahku_backend/internals/features/school/sessions/main/model"
)

/* =======================================================
   Scope laporan (pre-filter, BUKAN branching di formula)
   ======================================================= */

// ReportScope dibangun sekali oleh layer authz (role teacher dikunci ke
// teacher_id miliknya) lalu dipass sebagai data polos. Formula agregasi
// tidak pernah lihat role.
type ReportScope struct {
	ClassID    *uuid.UUID
	LocationID *uuid.UUID
	TeacherID  *uuid.UUID
	Search     string
}

/* =======================================================
   Metrik per kelas
   ======================================================= */

type ScheduleCounts struct {
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Upcoming  int `json:"upcoming"`
}

type ClassMetrics struct {
	ClassID           uuid.UUID `json:"class_id"`
	ClassName         string    `json:"class_name"`
	TeacherID         uuid.UUID `json:"teacher_id"`
	LocationID        uuid.UUID `json:"location_id"`
	Capacity          int       `json:"capacity"`
	CurrentEnrollment int       `json:"current_enrollment"`

	PresentCount           int `json:"present_count"`
	TotalAttendanceRecords int `json:"total_attendance_records"`
	AverageAttendance      int `json:"average_attendance"` // persen bulat

	TotalBilled    float64 `json:"total_billed"`
	TotalRevenue   float64 `json:"total_revenue"` // Σ paid_amount
	PendingFees    float64 `json:"pending_fees"`  // Σ (amount - paid_amount)
	CollectionRate int     `json:"collection_rate"`

	Sessions           ScheduleCounts `json:"sessions"`
	TotalSessions      int            `json:"total_sessions"`
	AvgStudentsPresent int            `json:"avg_students_present"`
}

type attendanceTotals struct {
	Present int64
	Total   int64
}

type feeTotals struct {
	Billed float64
	Paid   float64
}

type sessionTotals struct {
	Completed int64
	Cancelled int64
	Upcoming  int64
}

/* =======================================================
   Engine
   ======================================================= */

type AggregationService struct {
	DB *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{DB: db}
}

// ScopedClasses mengambil kelas sesuai scope, urut nama.
func (s *AggregationService) ScopedClasses(scope ReportScope) ([]classModel.ClassModel, error) {
	tx := s.DB.Model(&classModel.ClassModel{}).
		Where("class_deleted_at IS NULL")

	if scope.ClassID != nil {
		tx = tx.Where("class_id = ?", *scope.ClassID)
	}
	if scope.LocationID != nil {
		tx = tx.Where("class_location_id = ?", *scope.LocationID)
	}
	if scope.TeacherID != nil {
		tx = tx.Where("class_teacher_id = ?", *scope.TeacherID)
	}
	if scope.Search != "" {
		tx = tx.Where("class_name ILIKE ?", "%"+scope.Search+"%")
	}

	var classes []classModel.ClassModel
	if err := tx.Order("class_name ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// ClassMetrics menghitung metrik per kelas di dalam window. Setiap sub-query
// di-key pakai class_id kelas yang sedang dihitung — record kelas lain tidak
// boleh bocor ke metrik kelas ini walau tabelnya sama. Error sub-query mana
// pun menggagalkan seluruh laporan (fail-closed, tanpa laporan parsial).
func (s *AggregationService) ClassMetrics(classes []classModel.ClassModel, w TimeWindow) ([]ClassMetrics, error) {
	out := make([]ClassMetrics, 0, len(classes))

	for i := range classes {
		cls := &classes[i]

		att, err := s.attendanceTotals(cls.ClassID, w)
		if err != nil {
			return nil, err
		}
		fee, err := s.feeTotals(cls.ClassID, w)
		if err != nil {
			return nil, err
		}
		ses, err := s.sessionTotals(cls.ClassID, w)
		if err != nil {
			return nil, err
		}

		out = append(out, buildClassMetrics(cls, att, fee, ses))
	}

	return out, nil
}

func (s *AggregationService) attendanceTotals(classID uuid.UUID, w TimeWindow) (attendanceTotals, error) {
	var row attendanceTotals
	tx := s.DB.Model(&attendanceModel.AttendanceRecordModel{}).
		Select(`COUNT(*) AS total, COUNT(*) FILTER (WHERE attendance_record_status = 'present') AS present`).
		Where("attendance_record_class_id = ?", classID)
	tx = applyDateWindow(tx, "attendance_record_date", w)
	if err := tx.Scan(&row).Error; err != nil {
		return attendanceTotals{}, err
	}
	return row, nil
}

func (s *AggregationService) feeTotals(classID uuid.UUID, w TimeWindow) (feeTotals, error) {
	var row feeTotals
	tx := s.DB.Model(&feeModel.StudentFeeModel{}).
		Select(`COALESCE(SUM(student_fee_amount), 0) AS billed, COALESCE(SUM(student_fee_paid_amount), 0) AS paid`).
		Where("student_fee_class_id = ?", classID)
	tx = applyTimestampWindow(tx, "student_fee_created_at", w)
	if err := tx.Scan(&row).Error; err != nil {
		return feeTotals{}, err
	}
	return row, nil
}

func (s *AggregationService) sessionTotals(classID uuid.UUID, w TimeWindow) (sessionTotals, error) {
	var row sessionTotals
	tx := s.DB.Model(&sessionModel.ClassSessionModel{}).
		Select(`COUNT(*) FILTER (WHERE class_session_status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE class_session_status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE class_session_status = 'scheduled') AS upcoming`).
		Where("class_session_class_id = ?", classID)
	tx = applyDateWindow(tx, "class_session_date", w)
	if err := tx.Scan(&row).Error; err != nil {
		return sessionTotals{}, err
	}
	return row, nil
}

// applyDateWindow untuk kolom date (interval inklusif dua sisi).
func applyDateWindow(tx *gorm.DB, col string, w TimeWindow) *gorm.DB {
	if w.From != nil {
		tx = tx.Where(col+" >= ?", *w.From)
	}
	if w.To != nil {
		tx = tx.Where(col+" <= ?", *w.To)
	}
	return tx
}

// applyTimestampWindow untuk kolom timestamp: batas atas inklusif sampai
// akhir hari To.
func applyTimestampWindow(tx *gorm.DB, col string, w TimeWindow) *gorm.DB {
	if w.From != nil {
		tx = tx.Where(col+" >= ?", *w.From)
	}
	if w.To != nil {
		tx = tx.Where(col+" < ?", w.To.AddDate(0, 0, 1))
	}
	return tx
}

/* =======================================================
   Formula murni (safe-division: rasio = 0 saat penyebut 0)
   ======================================================= */

func buildClassMetrics(cls *classModel.ClassModel, att attendanceTotals, fee feeTotals, ses sessionTotals) ClassMetrics {
	totalSessions := int(ses.Completed + ses.Cancelled + ses.Upcoming)

	return ClassMetrics{
		ClassID:           cls.ClassID,
		ClassName:         cls.ClassName,
		TeacherID:         cls.ClassTeacherID,
		LocationID:        cls.ClassLocationID,
		Capacity:          cls.ClassCapacity,
		CurrentEnrollment: cls.ClassCurrentEnrollment,

		PresentCount:           int(att.Present),
		TotalAttendanceRecords: int(att.Total),
		AverageAttendance:      roundPct(float64(att.Present), float64(att.Total)),

		TotalBilled:    fee.Billed,
		TotalRevenue:   fee.Paid,
		PendingFees:    fee.Billed - fee.Paid,
		CollectionRate: roundPct(fee.Paid, fee.Billed),

		Sessions: ScheduleCounts{
			Completed: int(ses.Completed),
			Cancelled: int(ses.Cancelled),
			Upcoming:  int(ses.Upcoming),
		},
		TotalSessions:      totalSessions,
		AvgStudentsPresent: roundDiv(float64(att.Present), float64(totalSessions)),
	}
}

// roundPct = round(100 * num / den); 0 kalau den 0 (bukan NaN).
func roundPct(num, den float64) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * num / den))
}

// roundDiv = round(num / den); 0 kalau den 0.
func roundDiv(num, den float64) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(num / den))
}
