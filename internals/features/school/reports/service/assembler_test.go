package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func sampleMetrics() []ClassMetrics {
	locA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	locB := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	return []ClassMetrics{
		{
			ClassID: uuid.New(), ClassName: "IPA 8B", LocationID: locB,
			Capacity: 25, CurrentEnrollment: 20,
			TotalBilled: 500, TotalRevenue: 500, PendingFees: 0, CollectionRate: 100,
			Sessions: ScheduleCounts{Completed: 4, Upcoming: 2}, TotalSessions: 6,
		},
		{
			ClassID: uuid.New(), ClassName: "Bahasa 7C", LocationID: locA,
			Capacity: 30, CurrentEnrollment: 28,
			TotalBilled: 1000, TotalRevenue: 600, PendingFees: 400, CollectionRate: 60,
			PresentCount: 50, TotalAttendanceRecords: 60, AverageAttendance: 83,
			Sessions: ScheduleCounts{Completed: 5, Cancelled: 1, Upcoming: 4}, TotalSessions: 10,
		},
		{
			ClassID: uuid.New(), ClassName: "Matematika 7A", LocationID: locA,
			Capacity: 30, CurrentEnrollment: 15,
			TotalBilled: 500, TotalRevenue: 100, PendingFees: 400, CollectionRate: 20,
			Sessions: ScheduleCounts{Completed: 2}, TotalSessions: 2,
		},
	}
}

func TestAssembleReport_ClassOverviewSortedByName(t *testing.T) {
	out, err := AssembleReport(ShapeClassOverview, sampleMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, ok := out.([]ClassOverviewRow)
	if !ok {
		t.Fatalf("expected []ClassOverviewRow, got %T", out)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	wantOrder := []string{"Bahasa 7C", "IPA 8B", "Matematika 7A"}
	for i, name := range wantOrder {
		if rows[i].ClassName != name {
			t.Fatalf("rows[%d].ClassName = %q, want %q", i, rows[i].ClassName, name)
		}
	}
}

func TestAssembleReport_Attendance(t *testing.T) {
	out, err := AssembleReport(ShapeAttendance, sampleMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := out.([]AttendanceReportRow)
	// Bahasa 7C tampil pertama dan membawa angka hadirnya
	if rows[0].ClassName != "Bahasa 7C" || rows[0].PresentCount != 50 || rows[0].TotalRecords != 60 {
		t.Fatalf("unexpected first attendance row: %+v", rows[0])
	}
	if rows[0].AverageAttendance != 83 {
		t.Fatalf("AverageAttendance = %d, want 83 (passed through, not recomputed)", rows[0].AverageAttendance)
	}
}

func TestAssembleReport_EnrollmentByLocation(t *testing.T) {
	out, err := AssembleReport(ShapeEnrollmentByLocation, sampleMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := out.([]LocationEnrollmentRow)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 locations", len(rows))
	}

	// urut string UUID: lokasi 1111… dulu
	locA := rows[0]
	if locA.ClassCount != 2 || locA.TotalCapacity != 60 || locA.TotalEnrolled != 43 {
		t.Fatalf("location A aggregate = %+v, want {ClassCount:2 TotalCapacity:60 TotalEnrolled:43}", locA)
	}
	locB := rows[1]
	if locB.ClassCount != 1 || locB.TotalCapacity != 25 || locB.TotalEnrolled != 20 {
		t.Fatalf("location B aggregate = %+v, want {ClassCount:1 TotalCapacity:25 TotalEnrolled:20}", locB)
	}
}

func TestAssembleReport_RevenueSummary(t *testing.T) {
	out, err := AssembleReport(ShapeRevenueSummary, sampleMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := out.(RevenueSummary)
	if s.TotalBilled != 2000 || s.TotalRevenue != 1200 || s.PendingFees != 800 {
		t.Fatalf("summary totals = %+v, want billed 2000 / revenue 1200 / pending 800", s)
	}
	if s.CollectionRate != 60 {
		t.Fatalf("CollectionRate = %d, want 60", s.CollectionRate)
	}
	if len(s.Classes) != 3 {
		t.Fatalf("len(Classes) = %d, want 3", len(s.Classes))
	}
}

func TestAssembleReport_EmptyMetrics(t *testing.T) {
	shapes := []string{
		ShapeClassOverview, ShapeAttendance, ShapeFeeCollection,
		ShapeEnrollmentByLocation, ShapeScheduleSummary,
	}
	for _, shape := range shapes {
		out, err := AssembleReport(shape, nil)
		if err != nil {
			t.Fatalf("shape %s: unexpected error: %v", shape, err)
		}
		if out == nil {
			t.Fatalf("shape %s: expected empty slice, got nil interface", shape)
		}
	}

	out, err := AssembleReport(ShapeRevenueSummary, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := out.(RevenueSummary); s.CollectionRate != 0 {
		t.Fatalf("empty revenue summary CollectionRate = %d, want 0", s.CollectionRate)
	}
}

func TestAssembleReport_UnknownShape(t *testing.T) {
	_, err := AssembleReport("pivot-table", sampleMetrics())
	if err == nil {
		t.Fatalf("unknown shape must error")
	}
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("want fiber 400, got %v", err)
	}
}
