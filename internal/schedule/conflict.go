package schedule

import "sort"

// ConflictType identifies why a candidate selection cannot be submitted.
type ConflictType string

const (
	ConflictNone         ConflictType = "none"
	ConflictOverlapSelf  ConflictType = "overlap-self"
	ConflictOverlapOther ConflictType = "overlap-other"
	ConflictTooShort     ConflictType = "too-short"
)

// ConflictDetection is the advisory result of validating a selection.
// It never blocks by itself; submission gating is the caller's decision
// based on HasConflict.
type ConflictDetection struct {
	HasConflict bool         `json:"has_conflict"`
	Type        ConflictType `json:"conflict_type"`
	Message     string       `json:"message"`
	Suggestion  string       `json:"suggestion"`
}

// conflictTexts maps each conflict type to its user-facing message and fix
// suggestion. Booked cells are unselectable in the grid, so overlap-other is
// kept only for completeness.
var conflictTexts = map[ConflictType][2]string{
	ConflictOverlapSelf:  {"所选时间段之间存在重叠", "请调整所选时间段，避免相互重叠"},
	ConflictOverlapOther: {"所选时间段与已有预约冲突", "请选择其他空闲时间段"},
	ConflictTooShort:     {"存在无效的时间段", "请删除无效时间段后重新选择"},
}

func noConflict() ConflictDetection {
	return ConflictDetection{HasConflict: false, Type: ConflictNone}
}

func conflictOf(t ConflictType) ConflictDetection {
	texts := conflictTexts[t]
	return ConflictDetection{
		HasConflict: true,
		Type:        t,
		Message:     texts[0],
		Suggestion:  texts[1],
	}
}

// DetectConflicts validates that the accumulated candidate slots are
// internally consistent. Slots are checked in start-time order; the first
// violation wins. A degenerate window (end <= start) reports too-short, so
// malformed input degrades to an advisory conflict instead of a panic.
func DetectConflicts(slots []CandidateSlot) ConflictDetection {
	if len(slots) == 0 {
		return noConflict()
	}

	sorted := make([]CandidateSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	for i, s := range sorted {
		if s.Duration() <= 0 {
			return conflictOf(ConflictTooShort)
		}
		if i > 0 && sorted[i-1].End.After(s.Start) {
			return conflictOf(ConflictOverlapSelf)
		}
	}

	return noConflict()
}
