package service

import (
	"github.com/google/uuid"
)

/* =======================================================
   Guard enrolment: uniqueness + kapasitas (pure, tanpa DB)
   ======================================================= */

type EnrollOutcome int

const (
	EnrollAccepted EnrollOutcome = iota
	EnrollDuplicate
	EnrollCapacityFull
)

// CheckEnrollment memutuskan satu enrolment. Kapasitas 0 berarti kelas
// tidak menerima siswa.
func CheckEnrollment(capacity, currentEnrollment int, alreadyEnrolled bool) EnrollOutcome {
	if alreadyEnrolled {
		return EnrollDuplicate
	}
	if currentEnrollment >= capacity {
		return EnrollCapacityFull
	}
	return EnrollAccepted
}

// BulkEnrollmentPlan adalah hasil rencana bulk enrolment best-effort.
// NewEnrollments dijamin persis jumlah student di Enroll — caller bergantung
// pada angka ini, bukan sekadar "sukses".
type BulkEnrollmentPlan struct {
	Enroll           []uuid.UUID
	SkippedDuplicate []uuid.UUID
	SkippedCapacity  []uuid.UUID
	NewEnrollments   int
}

// SplitKnownStudents memisahkan kandidat yang tidak dikenal di tabel users
// sebelum planning — ID asing tidak boleh jadi enrolment yang menunjuk ke
// student yang tidak ada. Urutan input dipertahankan di kedua sisi.
func SplitKnownStudents(known map[uuid.UUID]struct{}, candidates []uuid.UUID) (valid, unknown []uuid.UUID) {
	for _, sid := range candidates {
		if _, ok := known[sid]; ok {
			valid = append(valid, sid)
		} else {
			unknown = append(unknown, sid)
		}
	}
	return valid, unknown
}

// PlanBulkEnrollment memproses kandidat sesuai urutan input: duplikat
// (sudah terdaftar, atau muncul dua kali di input) dan yang kena batas
// kapasitas di-skip diam-diam, sisanya di-enroll. Best-effort, bukan
// all-or-nothing — kebijakan ini disengaja, jangan di-upgrade jadi atomic.
func PlanBulkEnrollment(capacity, currentEnrollment int, enrolled map[uuid.UUID]struct{}, candidates []uuid.UUID) BulkEnrollmentPlan {
	plan := BulkEnrollmentPlan{}

	seen := make(map[uuid.UUID]struct{}, len(enrolled)+len(candidates))
	for id := range enrolled {
		seen[id] = struct{}{}
	}

	slots := capacity - currentEnrollment
	if slots < 0 {
		slots = 0
	}

	for _, sid := range candidates {
		if _, dup := seen[sid]; dup {
			plan.SkippedDuplicate = append(plan.SkippedDuplicate, sid)
			continue
		}
		if slots == 0 {
			plan.SkippedCapacity = append(plan.SkippedCapacity, sid)
			continue
		}
		seen[sid] = struct{}{}
		plan.Enroll = append(plan.Enroll, sid)
		slots--
	}

	plan.NewEnrollments = len(plan.Enroll)
	return plan
}
