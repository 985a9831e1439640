// Package schedule contains the pure computation core of the equipment
// reservation system: slot-grid classification, conflict detection, time
// recommendations, duration advice and booking-form suggestions.
// It performs no I/O; callers supply pre-fetched bookings and projects.
package schedule

import (
	"fmt"
	"time"
)

// SlotState classifies one half-hour grid cell.
type SlotState string

const (
	SlotBooked      SlotState = "booked"
	SlotSelected    SlotState = "selected"
	SlotAvailable   SlotState = "available"
	SlotUnavailable SlotState = "unavailable"
)

// BookingStatus mirrors the status of a stored reservation.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ExistingBooking is the engine's read-only view of a stored reservation.
// The engine never mutates it.
type ExistingBooking struct {
	ID          string
	EquipmentID string
	Start       time.Time
	End         time.Time
	OwnerName   string
	Purpose     string
	Status      BookingStatus
}

// Blocks reports whether the booking occupies its time range.
// Cancelled bookings do not block the grid.
func (b ExistingBooking) Blocks() bool {
	return b.Status != StatusCancelled
}

// CandidateSlot is a tentative, not-yet-submitted time window chosen by the
// current user. Multiple candidate slots may coexist until submission.
type CandidateSlot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the candidate's length.
func (s CandidateSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

const (
	// SlotMinutes is the grid granularity.
	SlotMinutes = 30
	// SlotsPerDay is 24 hours on a half-hour grid.
	SlotsPerDay = 48
	// DefaultCandidateDuration is the window created by a single-cell click.
	DefaultCandidateDuration = time.Hour

	timeLabelFormat = "15:04"
	dateFormat      = "2006-01-02"
)

// TimeLabels returns the fixed half-hour label set 00:00 .. 23:30.
func TimeLabels() []string {
	labels := make([]string, 0, SlotsPerDay)
	for i := 0; i < SlotsPerDay; i++ {
		mins := i * SlotMinutes
		labels = append(labels, fmt.Sprintf("%02d:%02d", mins/60, mins%60))
	}
	return labels
}

// cellBounds resolves a (day, HH:MM label) pair to the cell's time range.
func cellBounds(day time.Time, label string) (time.Time, time.Time, error) {
	t, err := time.Parse(timeLabelFormat, label)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time label %q: %w", label, err)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
	return start, start.Add(SlotMinutes * time.Minute), nil
}

// overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching boundaries do not count as an intersection.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Classify returns the state of one grid cell with the precedence
// booked > selected > unavailable(past) > available.
//
// A booking that covers any part of the cell marks the whole cell booked;
// there are no partial-cell bookings. A cell whose start is not strictly in
// the future is unavailable regardless of selection. Malformed labels
// classify as unavailable rather than failing.
func Classify(day time.Time, label string, bookings []ExistingBooking, selected []CandidateSlot, now time.Time) SlotState {
	cellStart, cellEnd, err := cellBounds(day, label)
	if err != nil {
		return SlotUnavailable
	}

	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		if overlaps(cellStart, cellEnd, b.Start, b.End) {
			return SlotBooked
		}
	}

	for _, s := range selected {
		if overlaps(cellStart, cellEnd, s.Start, s.End) {
			return SlotSelected
		}
	}

	// Strictly future only: a cell starting exactly at "now" is already gone.
	if !cellStart.After(now) {
		return SlotUnavailable
	}

	return SlotAvailable
}

// SlotCell is one rendered grid cell.
type SlotCell struct {
	Label string    `json:"label"`
	State SlotState `json:"state"`
}

// DayGrid classifies every half-hour cell of the given day.
// It is a pure projection of the inputs and safe to call on every render.
func DayGrid(day time.Time, bookings []ExistingBooking, selected []CandidateSlot, now time.Time) []SlotCell {
	labels := TimeLabels()
	cells := make([]SlotCell, len(labels))
	for i, label := range labels {
		cells[i] = SlotCell{
			Label: label,
			State: Classify(day, label, bookings, selected, now),
		}
	}
	return cells
}

// CandidateFromCell builds the default candidate window for a single-cell
// click: one hour starting at the cell boundary.
func CandidateFromCell(day time.Time, label string) (CandidateSlot, error) {
	start, _, err := cellBounds(day, label)
	if err != nil {
		return CandidateSlot{}, err
	}
	return CandidateSlot{Start: start, End: start.Add(DefaultCandidateDuration)}, nil
}
