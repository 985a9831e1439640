package schedule_test

import (
	"testing"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

func slot(startHour, startMin, endHour, endMin int) schedule.CandidateSlot {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return schedule.CandidateSlot{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		name     string
		slots    []schedule.CandidateSlot
		wantHas  bool
		wantType schedule.ConflictType
	}{
		{
			name:     "empty selection has no conflict",
			slots:    nil,
			wantHas:  false,
			wantType: schedule.ConflictNone,
		},
		{
			name:     "single slot has no conflict",
			slots:    []schedule.CandidateSlot{slot(10, 0, 11, 0)},
			wantHas:  false,
			wantType: schedule.ConflictNone,
		},
		{
			name:     "disjoint slots have no conflict",
			slots:    []schedule.CandidateSlot{slot(14, 0, 15, 0), slot(10, 0, 11, 0)},
			wantHas:  false,
			wantType: schedule.ConflictNone,
		},
		{
			name:     "touching slots have no conflict",
			slots:    []schedule.CandidateSlot{slot(10, 0, 11, 0), slot(11, 0, 12, 0)},
			wantHas:  false,
			wantType: schedule.ConflictNone,
		},
		{
			name:     "overlapping slots",
			slots:    []schedule.CandidateSlot{slot(10, 0, 11, 0), slot(10, 30, 11, 30)},
			wantHas:  true,
			wantType: schedule.ConflictOverlapSelf,
		},
		{
			name:     "duplicate slots overlap",
			slots:    []schedule.CandidateSlot{slot(10, 0, 11, 0), slot(10, 0, 11, 0)},
			wantHas:  true,
			wantType: schedule.ConflictOverlapSelf,
		},
		{
			name:     "zero-duration slot is too short",
			slots:    []schedule.CandidateSlot{slot(10, 0, 10, 0)},
			wantHas:  true,
			wantType: schedule.ConflictTooShort,
		},
		{
			name:     "inverted slot is too short",
			slots:    []schedule.CandidateSlot{slot(11, 0, 10, 0)},
			wantHas:  true,
			wantType: schedule.ConflictTooShort,
		},
		{
			name:     "first violation in time order wins",
			slots:    []schedule.CandidateSlot{slot(14, 0, 14, 0), slot(9, 0, 10, 0), slot(9, 30, 10, 30)},
			wantHas:  true,
			wantType: schedule.ConflictOverlapSelf,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.DetectConflicts(tt.slots)
			if got.HasConflict != tt.wantHas || got.Type != tt.wantType {
				t.Errorf("DetectConflicts() = {%v %v}, want {%v %v}",
					got.HasConflict, got.Type, tt.wantHas, tt.wantType)
			}
			if got.HasConflict && (got.Message == "" || got.Suggestion == "") {
				t.Errorf("conflict %v must carry message and suggestion", got.Type)
			}
			if !got.HasConflict && (got.Message != "" || got.Suggestion != "") {
				t.Errorf("no-conflict result must not carry texts, got %+v", got)
			}
		})
	}
}

// Removing the duplicate that caused a conflict restores a clean result.
func TestDetectConflictsIdempotent(t *testing.T) {
	clean := []schedule.CandidateSlot{slot(10, 0, 11, 0)}
	dirty := append([]schedule.CandidateSlot{slot(10, 0, 11, 0)}, clean...)

	if got := schedule.DetectConflicts(dirty); !got.HasConflict {
		t.Fatal("duplicate slots should conflict")
	}
	if got := schedule.DetectConflicts(clean); got.HasConflict {
		t.Fatalf("clean selection should not conflict, got %+v", got)
	}
}

// DetectConflicts must not reorder the caller's slice.
func TestDetectConflictsDoesNotMutateInput(t *testing.T) {
	slots := []schedule.CandidateSlot{slot(14, 0, 15, 0), slot(10, 0, 11, 0)}
	schedule.DetectConflicts(slots)
	if !slots[0].Start.After(slots[1].Start) {
		t.Error("input slice was reordered")
	}
}
