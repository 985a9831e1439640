package schedule_test

import (
	"testing"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

func TestUsageHeatmap(t *testing.T) {
	// 2024-03-15 is a Friday.
	bookings := []schedule.ExistingBooking{
		{
			Start:  time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
			Status: schedule.StatusConfirmed,
		},
		{
			Start:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			Status: schedule.StatusPending,
		},
		{
			Start:  time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			Status: schedule.StatusCancelled, // ignored
		},
	}

	cells := schedule.UsageHeatmap(bookings)
	if len(cells) != 7*24 {
		t.Fatalf("got %d cells, want %d", len(cells), 7*24)
	}

	counts := make(map[[2]int]int, len(cells))
	for _, c := range cells {
		counts[[2]int{c.Weekday, c.Hour}] = c.Count
	}

	friday := int(time.Friday)
	if got := counts[[2]int{friday, 9}]; got != 2 {
		t.Errorf("Friday 09:00 count = %d, want 2", got)
	}
	if got := counts[[2]int{friday, 10}]; got != 2 {
		t.Errorf("Friday 10:00 count = %d, want 2", got)
	}
	if got := counts[[2]int{friday, 11}]; got != 0 {
		t.Errorf("Friday 11:00 count = %d, want 0", got)
	}
	if got := counts[[2]int{int(time.Monday), 9}]; got != 0 {
		t.Errorf("Monday 09:00 count = %d, want 0", got)
	}
}

func TestUsageHeatmapEmpty(t *testing.T) {
	cells := schedule.UsageHeatmap(nil)
	if len(cells) != 7*24 {
		t.Fatalf("got %d cells, want full grid", len(cells))
	}
	for _, c := range cells {
		if c.Count != 0 {
			t.Fatalf("cell %+v should be zero", c)
		}
	}
}
