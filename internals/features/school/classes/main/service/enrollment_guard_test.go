package service

import (
	"testing"

	"github.com/google/uuid"
)

func TestCheckEnrollment(t *testing.T) {
	tests := []struct {
		name            string
		capacity        int
		current         int
		alreadyEnrolled bool
		want            EnrollOutcome
	}{
		{"accepted when slot free", 30, 10, false, EnrollAccepted},
		{"duplicate wins over capacity", 30, 30, true, EnrollDuplicate},
		{"full when current == capacity", 30, 30, false, EnrollCapacityFull},
		{"full when over capacity", 30, 31, false, EnrollCapacityFull},
		{"capacity zero never accepts", 0, 0, false, EnrollCapacityFull},
		{"last slot accepted", 2, 1, false, EnrollAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckEnrollment(tt.capacity, tt.current, tt.alreadyEnrolled)
			if got != tt.want {
				t.Fatalf("CheckEnrollment(%d, %d, %v) = %v, want %v",
					tt.capacity, tt.current, tt.alreadyEnrolled, got, tt.want)
			}
		})
	}
}

func TestSplitKnownStudents(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	s3 := uuid.New()

	known := map[uuid.UUID]struct{}{s1: {}, s3: {}}

	// s2 tidak dikenal dan muncul dua kali: dua-duanya masuk bucket unknown
	valid, unknown := SplitKnownStudents(known, []uuid.UUID{s1, s2, s3, s2})
	if len(valid) != 2 || valid[0] != s1 || valid[1] != s3 {
		t.Fatalf("valid = %v, want [%s %s] in input order", valid, s1, s3)
	}
	if len(unknown) != 2 || unknown[0] != s2 || unknown[1] != s2 {
		t.Fatalf("unknown = %v, want both occurrences of %s", unknown, s2)
	}

	valid, unknown = SplitKnownStudents(map[uuid.UUID]struct{}{}, nil)
	if valid != nil || unknown != nil {
		t.Fatalf("empty input should split to nothing, got %v / %v", valid, unknown)
	}
}

func TestPlanBulkEnrollment_BestEffort(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	s3 := uuid.New()

	// kapasitas 2, sudah terisi 1 (s1). Input [s1, s2, s3]:
	// s1 duplikat, s2 masuk (slot terakhir), s3 kena kapasitas.
	enrolled := map[uuid.UUID]struct{}{s1: {}}
	plan := PlanBulkEnrollment(2, 1, enrolled, []uuid.UUID{s1, s2, s3})

	if plan.NewEnrollments != 1 {
		t.Fatalf("NewEnrollments = %d, want 1", plan.NewEnrollments)
	}
	if len(plan.Enroll) != 1 || plan.Enroll[0] != s2 {
		t.Fatalf("Enroll = %v, want [%s]", plan.Enroll, s2)
	}
	if len(plan.SkippedDuplicate) != 1 || plan.SkippedDuplicate[0] != s1 {
		t.Fatalf("SkippedDuplicate = %v, want [%s]", plan.SkippedDuplicate, s1)
	}
	if len(plan.SkippedCapacity) != 1 || plan.SkippedCapacity[0] != s3 {
		t.Fatalf("SkippedCapacity = %v, want [%s]", plan.SkippedCapacity, s3)
	}
}

func TestPlanBulkEnrollment_InputDuplicates(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	plan := PlanBulkEnrollment(10, 0, map[uuid.UUID]struct{}{}, []uuid.UUID{s1, s1, s2})

	if plan.NewEnrollments != 2 {
		t.Fatalf("NewEnrollments = %d, want 2", plan.NewEnrollments)
	}
	if len(plan.SkippedDuplicate) != 1 || plan.SkippedDuplicate[0] != s1 {
		t.Fatalf("second occurrence of %s should be skipped as duplicate, got %v", s1, plan.SkippedDuplicate)
	}
}

func TestPlanBulkEnrollment_PreservesInputOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	plan := PlanBulkEnrollment(3, 0, map[uuid.UUID]struct{}{}, ids)

	if len(plan.Enroll) != 3 {
		t.Fatalf("Enroll length = %d, want 3", len(plan.Enroll))
	}
	for i, id := range ids {
		if plan.Enroll[i] != id {
			t.Fatalf("Enroll[%d] = %s, want %s (input order)", i, plan.Enroll[i], id)
		}
	}
}

func TestPlanBulkEnrollment_OverfullClass(t *testing.T) {
	// current di atas kapasitas (mis. kapasitas diturunkan): tidak boleh negatif slot
	plan := PlanBulkEnrollment(2, 5, map[uuid.UUID]struct{}{}, []uuid.UUID{uuid.New()})

	if plan.NewEnrollments != 0 || len(plan.SkippedCapacity) != 1 {
		t.Fatalf("overfull class must skip everything by capacity, got %+v", plan)
	}
}

func TestPlanBulkEnrollment_EmptyInput(t *testing.T) {
	plan := PlanBulkEnrollment(10, 0, map[uuid.UUID]struct{}{}, nil)
	if plan.NewEnrollments != 0 || plan.Enroll != nil {
		t.Fatalf("empty input should produce empty plan, got %+v", plan)
	}
}
