package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	classModel "sekolahku_backend/internals/features/school/classes/main/model"
)

/* =======================================================
   DryRun: setiap sub-query wajib di-key pakai class_id
   kelas yang sedang dihitung — record kelas lain tidak
   boleh bocor walau tabelnya sama.
   ======================================================= */

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
	if err := db.Callback().Query().After("gorm:query").Register("capture_stmt", capture); err != nil {
		t.Fatalf("register capture callback: %v", err)
	}
	// Scan() berjalan lewat callback Row, bukan Query; SQL tetap dibangun
	// sebelum DryRun menolak eksekusi, jadi rekam juga di sini.
	if err := db.Callback().Row().After("gorm:row").Register("capture_row", capture); err != nil {
		t.Fatalf("register row capture callback: %v", err)
	}
	return db, rec
}

// dryRunScanErr: dalam DryRun, Scan membangun SQL lalu menolak eksekusi
// dengan ErrDryRunModeUnsupported — itu artefak fixture, bukan kegagalan.
func dryRunScanErr(err error) bool {
	return err != nil && !errors.Is(err, gorm.ErrDryRunModeUnsupported)
}

func TestAttendanceTotals_KeyedByClass(t *testing.T) {
	db, rec := dryRunDB(t)
	svc := NewAggregationService(db)

	classID := uuid.New()
	from := date(2024, time.March, 1)
	to := date(2024, time.March, 31)

	if _, err := svc.attendanceTotals(classID, TimeWindow{From: &from, To: &to}); dryRunScanErr(err) {
		t.Fatalf("attendanceTotals: %v", err)
	}

	if !strings.Contains(rec.SQL, "attendance_record_class_id = $1") {
		t.Fatalf("sub-query must be keyed by class_id, got: %s", rec.SQL)
	}
	if len(rec.Vars) != 3 || rec.Vars[0] != interface{}(classID) {
		t.Fatalf("class_id must be bound as the first parameter, vars: %v", rec.Vars)
	}
	// window tanggal inklusif dua sisi
	if !strings.Contains(rec.SQL, "attendance_record_date >= $2") ||
		!strings.Contains(rec.SQL, "attendance_record_date <= $3") {
		t.Fatalf("date window must be inclusive on both sides, got: %s", rec.SQL)
	}
}

func TestFeeTotals_KeyedByClass(t *testing.T) {
	db, rec := dryRunDB(t)
	svc := NewAggregationService(db)

	classID := uuid.New()
	from := date(2024, time.March, 1)
	to := date(2024, time.March, 31)

	if _, err := svc.feeTotals(classID, TimeWindow{From: &from, To: &to}); dryRunScanErr(err) {
		t.Fatalf("feeTotals: %v", err)
	}

	if !strings.Contains(rec.SQL, "student_fee_class_id = $1") {
		t.Fatalf("sub-query must be keyed by class_id, got: %s", rec.SQL)
	}
	// kolom timestamp: batas atas eksklusif di awal hari setelah To
	if !strings.Contains(rec.SQL, "student_fee_created_at >= $2") ||
		!strings.Contains(rec.SQL, "student_fee_created_at < $3") {
		t.Fatalf("timestamp window must be [From, To+1d), got: %s", rec.SQL)
	}
	upper, ok := rec.Vars[2].(time.Time)
	if !ok || !upper.Equal(to.AddDate(0, 0, 1)) {
		t.Fatalf("upper bound must be To+1 day, vars: %v", rec.Vars)
	}
}

func TestSessionTotals_KeyedByClass(t *testing.T) {
	db, rec := dryRunDB(t)
	svc := NewAggregationService(db)

	classID := uuid.New()

	// window unbounded: satu-satunya predikat adalah class key
	if _, err := svc.sessionTotals(classID, TimeWindow{}); dryRunScanErr(err) {
		t.Fatalf("sessionTotals: %v", err)
	}

	if !strings.Contains(rec.SQL, "class_session_class_id = $1") {
		t.Fatalf("sub-query must be keyed by class_id, got: %s", rec.SQL)
	}
	if len(rec.Vars) != 1 || rec.Vars[0] != interface{}(classID) {
		t.Fatalf("unbounded window must bind only class_id, vars: %v", rec.Vars)
	}
}

func TestRoundPct(t *testing.T) {
	tests := []struct {
		num, den float64
		want     int
	}{
		{0, 0, 0}, // penyebut 0 → 0, bukan NaN
		{5, 0, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
		{1, 8, 13}, // 12.5 dibulatkan naik
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := roundPct(tt.num, tt.den); got != tt.want {
			t.Errorf("roundPct(%v, %v) = %d, want %d", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestRoundDiv(t *testing.T) {
	tests := []struct {
		num, den float64
		want     int
	}{
		{0, 0, 0},
		{7, 0, 0},
		{7, 2, 4}, // 3.5 dibulatkan naik
		{10, 4, 3},
		{9, 3, 3},
	}
	for _, tt := range tests {
		if got := roundDiv(tt.num, tt.den); got != tt.want {
			t.Errorf("roundDiv(%v, %v) = %d, want %d", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestBuildClassMetrics(t *testing.T) {
	cls := &classModel.ClassModel{
		ClassID:                uuid.New(),
		ClassName:              "Matematika 7A",
		ClassTeacherID:         uuid.New(),
		ClassLocationID:        uuid.New(),
		ClassCapacity:          30,
		ClassCurrentEnrollment: 25,
	}

	m := buildClassMetrics(cls,
		attendanceTotals{Present: 40, Total: 50},
		feeTotals{Billed: 1000, Paid: 750},
		sessionTotals{Completed: 8, Cancelled: 1, Upcoming: 3},
	)

	if m.ClassID != cls.ClassID || m.ClassName != cls.ClassName {
		t.Fatalf("identity fields not carried over: %+v", m)
	}
	if m.AverageAttendance != 80 {
		t.Errorf("AverageAttendance = %d, want 80", m.AverageAttendance)
	}
	if m.CollectionRate != 75 {
		t.Errorf("CollectionRate = %d, want 75", m.CollectionRate)
	}
	if m.PendingFees != 250 {
		t.Errorf("PendingFees = %v, want 250", m.PendingFees)
	}
	if m.TotalSessions != 12 {
		t.Errorf("TotalSessions = %d, want 12", m.TotalSessions)
	}
	// 40 hadir / 12 sesi = 3.33 → 3
	if m.AvgStudentsPresent != 3 {
		t.Errorf("AvgStudentsPresent = %d, want 3", m.AvgStudentsPresent)
	}
}

func TestBuildClassMetrics_EmptyClass(t *testing.T) {
	cls := &classModel.ClassModel{
		ClassID:   uuid.New(),
		ClassName: "Kelas Kosong",
	}

	m := buildClassMetrics(cls, attendanceTotals{}, feeTotals{}, sessionTotals{})

	// kelas tanpa data sama sekali: semua rasio 0, tidak ada panic/NaN
	if m.AverageAttendance != 0 || m.CollectionRate != 0 || m.AvgStudentsPresent != 0 {
		t.Fatalf("empty class must produce zero ratios, got %+v", m)
	}
	if m.TotalBilled != 0 || m.TotalRevenue != 0 || m.PendingFees != 0 {
		t.Fatalf("empty class must produce zero money totals, got %+v", m)
	}
}

func TestBuildClassMetrics_OverpaidFees(t *testing.T) {
	cls := &classModel.ClassModel{ClassID: uuid.New()}

	m := buildClassMetrics(cls, attendanceTotals{}, feeTotals{Billed: 100, Paid: 120}, sessionTotals{})

	if m.PendingFees != -20 {
		t.Errorf("PendingFees = %v, want -20 (overpayment exposed, not clamped)", m.PendingFees)
	}
	if m.CollectionRate != 120 {
		t.Errorf("CollectionRate = %d, want 120", m.CollectionRate)
	}
}
