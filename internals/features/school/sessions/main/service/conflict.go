package service

import (
	"github.com/google/uuid"

	sessionModel "sekolahku_backend/internals/features/school/sessions/main/model"
)

/* =======================================================
   Deteksi bentrok slot sesi (pure, tanpa DB)
   ======================================================= */

// BookingCandidate adalah slot yang mau dipesan. Jam format "HH:mm" 24 jam
// (zero-padded, jadi perbandingan string == perbandingan waktu).
type BookingCandidate struct {
	StartTime string
	EndTime   string
	ExcludeID uuid.UUID // untuk update: abaikan sesi yang sedang diedit
}

// BookingDecision adalah hasil tagged: Accepted, atau Conflict dengan sesi
// yang menghalangi. Persist + unique constraint tetap jadi penentu akhir
// kalau ada race antar request.
type BookingDecision struct {
	Conflict bool
	With     *sessionModel.ClassSessionModel
}

// CheckBookingConflict memutuskan apakah kandidat overlap dengan salah satu
// sesi existing. Caller wajib memberi sesi yang sudah difilter se-slot:
// sama class, location, dan date.
//
// Overlap half-open: N.start < E.end && N.end > E.start.
// Interval yang hanya bersentuhan (N.start == E.end atau N.end == E.start)
// BUKAN bentrok.
func CheckBookingConflict(existing []sessionModel.ClassSessionModel, cand BookingCandidate) BookingDecision {
	for i := range existing {
		e := &existing[i]
		if e.ClassSessionStatus != sessionModel.SessionScheduled {
			continue
		}
		if cand.ExcludeID != uuid.Nil && e.ClassSessionID == cand.ExcludeID {
			continue
		}
		if cand.StartTime < e.ClassSessionEndTime && cand.EndTime > e.ClassSessionStartTime {
			return BookingDecision{Conflict: true, With: e}
		}
	}
	return BookingDecision{}
}
