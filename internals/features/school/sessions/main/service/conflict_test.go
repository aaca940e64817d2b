package service

import (
	"testing"

	"github.com/google/uuid"

	sessionModel "sekolahku_backend/internals/features/school/sessions/main/model"
)

func scheduled(id uuid.UUID, start, end string) sessionModel.ClassSessionModel {
	return sessionModel.ClassSessionModel{
		ClassSessionID:        id,
		ClassSessionStartTime: start,
		ClassSessionEndTime:   end,
		ClassSessionStatus:    sessionModel.SessionScheduled,
	}
}

func TestCheckBookingConflict_Overlap(t *testing.T) {
	existingID := uuid.New()
	existing := []sessionModel.ClassSessionModel{
		scheduled(existingID, "09:00", "10:00"),
	}

	tests := []struct {
		name     string
		start    string
		end      string
		conflict bool
	}{
		{"candidate inside existing", "09:15", "09:45", true},
		{"candidate straddles end", "09:30", "10:30", true},
		{"candidate straddles start", "08:30", "09:30", true},
		{"candidate covers existing", "08:00", "11:00", true},
		{"identical interval", "09:00", "10:00", true},
		{"touching at end is not conflict", "10:00", "11:00", false},
		{"touching at start is not conflict", "08:00", "09:00", false},
		{"fully before", "07:00", "08:30", false},
		{"fully after", "10:30", "11:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckBookingConflict(existing, BookingCandidate{StartTime: tt.start, EndTime: tt.end})
			if d.Conflict != tt.conflict {
				t.Fatalf("CheckBookingConflict(%s-%s) conflict = %v, want %v", tt.start, tt.end, d.Conflict, tt.conflict)
			}
			if tt.conflict && d.With.ClassSessionID != existingID {
				t.Fatalf("conflict should reference existing session %s, got %s", existingID, d.With.ClassSessionID)
			}
		})
	}
}

func TestCheckBookingConflict_ExcludeID(t *testing.T) {
	own := uuid.New()
	existing := []sessionModel.ClassSessionModel{
		scheduled(own, "09:00", "10:00"),
	}

	// update pada sesi yang sama: dirinya sendiri diabaikan
	d := CheckBookingConflict(existing, BookingCandidate{StartTime: "09:00", EndTime: "10:00", ExcludeID: own})
	if d.Conflict {
		t.Fatalf("excluded session should not conflict with itself")
	}

	other := uuid.New()
	existing = append(existing, scheduled(other, "10:00", "11:00"))
	d = CheckBookingConflict(existing, BookingCandidate{StartTime: "09:30", EndTime: "10:30", ExcludeID: own})
	if !d.Conflict || d.With.ClassSessionID != other {
		t.Fatalf("candidate should conflict with session %s, got %+v", other, d)
	}
}

func TestCheckBookingConflict_IgnoresFinalStatuses(t *testing.T) {
	cancelled := scheduled(uuid.New(), "09:00", "10:00")
	cancelled.ClassSessionStatus = sessionModel.SessionCancelled
	completed := scheduled(uuid.New(), "09:00", "10:00")
	completed.ClassSessionStatus = sessionModel.SessionCompleted

	d := CheckBookingConflict([]sessionModel.ClassSessionModel{cancelled, completed},
		BookingCandidate{StartTime: "09:00", EndTime: "10:00"})
	if d.Conflict {
		t.Fatalf("cancelled/completed sessions must not block a new booking")
	}
}

func TestCheckBookingConflict_MultipleExisting(t *testing.T) {
	existing := []sessionModel.ClassSessionModel{
		scheduled(uuid.New(), "08:00", "09:00"),
		scheduled(uuid.New(), "10:00", "11:00"),
	}

	// pas di celah antara dua sesi (menyentuh dua-duanya)
	d := CheckBookingConflict(existing, BookingCandidate{StartTime: "09:00", EndTime: "10:00"})
	if d.Conflict {
		t.Fatalf("slot that only touches neighbours should be accepted")
	}

	d = CheckBookingConflict(existing, BookingCandidate{StartTime: "08:59", EndTime: "10:01"})
	if !d.Conflict {
		t.Fatalf("slot spilling into a neighbour should conflict")
	}
}
