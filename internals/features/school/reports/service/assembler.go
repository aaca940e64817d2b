package service

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* =======================================================
   Assembler: reshape metrik ke 6 bentuk laporan (pure)
   ======================================================= */

const (
	ShapeClassOverview        = "class-overview"
	ShapeAttendance           = "attendance"
	ShapeFeeCollection        = "fee-collection"
	ShapeEnrollmentByLocation = "enrollment-by-location"
	ShapeScheduleSummary      = "schedule-summary"
	ShapeRevenueSummary       = "revenue-summary"
)

type ClassOverviewRow struct {
	ClassID           uuid.UUID      `json:"class_id"`
	ClassName         string         `json:"class_name"`
	TeacherID         uuid.UUID      `json:"teacher_id"`
	LocationID        uuid.UUID      `json:"location_id"`
	Capacity          int            `json:"capacity"`
	CurrentEnrollment int            `json:"current_enrollment"`
	AverageAttendance int            `json:"average_attendance"`
	TotalRevenue      float64        `json:"total_revenue"`
	CollectionRate    int            `json:"collection_rate"`
	Sessions          ScheduleCounts `json:"sessions"`
}

type AttendanceReportRow struct {
	ClassID            uuid.UUID `json:"class_id"`
	ClassName          string    `json:"class_name"`
	PresentCount       int       `json:"present_count"`
	TotalRecords       int       `json:"total_records"`
	AverageAttendance  int       `json:"average_attendance"`
	AvgStudentsPresent int       `json:"avg_students_present"`
}

type FeeCollectionRow struct {
	ClassID        uuid.UUID `json:"class_id"`
	ClassName      string    `json:"class_name"`
	TotalBilled    float64   `json:"total_billed"`
	TotalPaid      float64   `json:"total_paid"`
	PendingFees    float64   `json:"pending_fees"`
	CollectionRate int       `json:"collection_rate"`
}

type LocationEnrollmentRow struct {
	LocationID    uuid.UUID `json:"location_id"`
	ClassCount    int       `json:"class_count"`
	TotalCapacity int       `json:"total_capacity"`
	TotalEnrolled int       `json:"total_enrolled"`
}

type ScheduleSummaryRow struct {
	ClassID            uuid.UUID `json:"class_id"`
	ClassName          string    `json:"class_name"`
	Completed          int       `json:"completed"`
	Cancelled          int       `json:"cancelled"`
	Upcoming           int       `json:"upcoming"`
	TotalSessions      int       `json:"total_sessions"`
	AvgStudentsPresent int       `json:"avg_students_present"`
}

type RevenueClassRow struct {
	ClassID      uuid.UUID `json:"class_id"`
	ClassName    string    `json:"class_name"`
	TotalRevenue float64   `json:"total_revenue"`
	PendingFees  float64   `json:"pending_fees"`
}

type RevenueSummary struct {
	TotalBilled    float64           `json:"total_billed"`
	TotalRevenue   float64           `json:"total_revenue"`
	PendingFees    float64           `json:"pending_fees"`
	CollectionRate int               `json:"collection_rate"`
	Classes        []RevenueClassRow `json:"classes"`
}

// AssembleReport menyusun metrik jadi bentuk laporan yang diminta. Tidak ada
// perhitungan metrik baru di sini: hanya reshape, grouping, dan sort.
// Konvensi: listing urut nama ascending; persentase sudah bulat dari engine.
// Bentuk tak dikenal = 400.
func AssembleReport(shape string, metrics []ClassMetrics) (interface{}, error) {
	sortByName(metrics)

	switch shape {
	case ShapeClassOverview:
		rows := make([]ClassOverviewRow, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, ClassOverviewRow{
				ClassID:           m.ClassID,
				ClassName:         m.ClassName,
				TeacherID:         m.TeacherID,
				LocationID:        m.LocationID,
				Capacity:          m.Capacity,
				CurrentEnrollment: m.CurrentEnrollment,
				AverageAttendance: m.AverageAttendance,
				TotalRevenue:      m.TotalRevenue,
				CollectionRate:    m.CollectionRate,
				Sessions:          m.Sessions,
			})
		}
		return rows, nil

	case ShapeAttendance:
		rows := make([]AttendanceReportRow, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, AttendanceReportRow{
				ClassID:            m.ClassID,
				ClassName:          m.ClassName,
				PresentCount:       m.PresentCount,
				TotalRecords:       m.TotalAttendanceRecords,
				AverageAttendance:  m.AverageAttendance,
				AvgStudentsPresent: m.AvgStudentsPresent,
			})
		}
		return rows, nil

	case ShapeFeeCollection:
		rows := make([]FeeCollectionRow, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, FeeCollectionRow{
				ClassID:        m.ClassID,
				ClassName:      m.ClassName,
				TotalBilled:    m.TotalBilled,
				TotalPaid:      m.TotalRevenue,
				PendingFees:    m.PendingFees,
				CollectionRate: m.CollectionRate,
			})
		}
		return rows, nil

	case ShapeEnrollmentByLocation:
		byLoc := make(map[uuid.UUID]*LocationEnrollmentRow)
		for _, m := range metrics {
			row, ok := byLoc[m.LocationID]
			if !ok {
				row = &LocationEnrollmentRow{LocationID: m.LocationID}
				byLoc[m.LocationID] = row
			}
			row.ClassCount++
			row.TotalCapacity += m.Capacity
			row.TotalEnrolled += m.CurrentEnrollment
		}
		rows := make([]LocationEnrollmentRow, 0, len(byLoc))
		for _, row := range byLoc {
			rows = append(rows, *row)
		}
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].LocationID.String() < rows[j].LocationID.String()
		})
		return rows, nil

	case ShapeScheduleSummary:
		rows := make([]ScheduleSummaryRow, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, ScheduleSummaryRow{
				ClassID:            m.ClassID,
				ClassName:          m.ClassName,
				Completed:          m.Sessions.Completed,
				Cancelled:          m.Sessions.Cancelled,
				Upcoming:           m.Sessions.Upcoming,
				TotalSessions:      m.TotalSessions,
				AvgStudentsPresent: m.AvgStudentsPresent,
			})
		}
		return rows, nil

	case ShapeRevenueSummary:
		summary := RevenueSummary{Classes: make([]RevenueClassRow, 0, len(metrics))}
		for _, m := range metrics {
			summary.TotalBilled += m.TotalBilled
			summary.TotalRevenue += m.TotalRevenue
			summary.PendingFees += m.PendingFees
			summary.Classes = append(summary.Classes, RevenueClassRow{
				ClassID:      m.ClassID,
				ClassName:    m.ClassName,
				TotalRevenue: m.TotalRevenue,
				PendingFees:  m.PendingFees,
			})
		}
		summary.CollectionRate = roundPct(summary.TotalRevenue, summary.TotalBilled)
		return summary, nil
	}

	return nil, fiber.NewError(fiber.StatusBadRequest, "Bentuk laporan tidak dikenal: "+shape)
}

func sortByName(metrics []ClassMetrics) {
	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].ClassName == metrics[j].ClassName {
			return metrics[i].ClassID.String() < metrics[j].ClassID.String()
		}
		return metrics[i].ClassName < metrics[j].ClassName
	})
}
