package controller

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	attendanceModel "sekolahku_backend/internals/features/school/attendance/model"
)

type capturedStmt struct {
	SQL  string
	Vars []interface{}
}

// dryRunDB membuka sesi GORM DryRun (SQL dibangun, tidak dieksekusi) dan
// merekam statement terakhir lewat callback.
func dryRunDB(t *testing.T) (*gorm.DB, *capturedStmt) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=sekolahku dbname=sekolahku",
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormLogger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}

	rec := &capturedStmt{}
	capture := func(tx *gorm.DB) {
		rec.SQL = tx.Statement.SQL.String()
		rec.Vars = tx.Statement.Vars
	}
	if err := db.Callback().Create().After("gorm:create").Register("capture_create", capture); err != nil {
		t.Fatalf("register create callback: %v", err)
	}
	if err := db.Callback().Query().After("gorm:query").Register("capture_query", capture); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	return db, rec
}

func TestUpsertAttendance_OnConflictTriple(t *testing.T) {
	db, rec := dryRunDB(t)

	notes := "terlambat 10 menit"
	m := &attendanceModel.AttendanceRecordModel{
		AttendanceRecordStudentID: uuid.New(),
		AttendanceRecordClassID:   uuid.New(),
		AttendanceRecordDate:      datatypes.Date(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)),
		AttendanceRecordStatus:    attendanceModel.AttendanceLate,
		AttendanceRecordNotes:     &notes,
	}

	if err := upsertAttendance(db, m, time.Now()); err != nil {
		t.Fatalf("upsertAttendance: %v", err)
	}

	if !strings.Contains(rec.SQL, `INSERT INTO "attendance_records"`) {
		t.Fatalf("expected insert into attendance_records, got: %s", rec.SQL)
	}
	// mark ulang untuk (student, class, date) yang sama harus jatuh ke index
	// triple dan update in place — bukan baris kedua
	if !strings.Contains(rec.SQL, `ON CONFLICT ("attendance_record_student_id","attendance_record_class_id","attendance_record_date")`) {
		t.Fatalf("upsert must target the (student, class, date) index, got: %s", rec.SQL)
	}
	parts := strings.SplitN(rec.SQL, "DO UPDATE SET", 2)
	if len(parts) != 2 {
		t.Fatalf("conflicting mark must update in place, got: %s", rec.SQL)
	}
	for _, col := range []string{"attendance_record_status", "attendance_record_notes", "attendance_record_updated_at"} {
		if !strings.Contains(parts[1], col) {
			t.Fatalf("DO UPDATE must set %s, got: %s", col, rec.SQL)
		}
	}
}

func TestEnsureStudentExists_UnknownStudent(t *testing.T) {
	db, rec := dryRunDB(t)
	h := NewAttendanceController(db)

	// DryRun tidak mengeksekusi query, count tetap 0 — persis kasus
	// student yang tidak ada
	err := h.ensureStudentExists(uuid.New())
	if err == nil {
		t.Fatalf("unknown student must be rejected")
	}
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
		t.Fatalf("want 404, got %v", err)
	}

	if !strings.Contains(rec.SQL, `FROM "users"`) || !strings.Contains(rec.SQL, "user_id = $1") {
		t.Fatalf("existence check must query users by user_id, got: %s", rec.SQL)
	}
	if !strings.Contains(rec.SQL, "user_deleted_at IS NULL") {
		t.Fatalf("soft-deleted users must not count, got: %s", rec.SQL)
	}
}
