package schedule_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

func TestBestTimeRecommendationsDeterminism(t *testing.T) {
	now := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	from := now
	to := now.AddDate(0, 0, 14)

	bookings := []schedule.ExistingBooking{
		{
			Start:  time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
			Status: schedule.StatusConfirmed,
		},
		{
			Start:  time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC),
			Status: schedule.StatusPending,
		},
	}

	first := schedule.BestTimeRecommendations(from, to, bookings, now)
	second := schedule.BestTimeRecommendations(from, to, bookings, now)

	if len(first) == 0 {
		t.Fatal("expected recommendations for a mostly free window")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical ordered output")
	}
}

func TestBestTimeRecommendationsExcludesBookedAndPast(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	bookings := []schedule.ExistingBooking{
		{
			Start:  time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC),
			Status: schedule.StatusConfirmed,
		},
	}

	recs := schedule.BestTimeRecommendations(from, to, bookings, now)
	for _, r := range recs {
		if r.StartTime <= "12:00" {
			t.Errorf("recommended past window %s", r.StartTime)
		}
		if r.StartTime == "14:00" || r.StartTime == "15:00" {
			t.Errorf("recommended booked window %s", r.StartTime)
		}
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("score %d out of range for %s", r.Score, r.StartTime)
		}
		if r.Reason == "" {
			t.Errorf("missing reason for %s", r.StartTime)
		}
	}
	// Business hours 08:00-20:00, now is 12:30, 14:00-16:00 booked:
	// candidates are 13:00 and 16:00..19:00.
	if len(recs) != 5 {
		t.Errorf("got %d recommendations, want 5", len(recs))
	}
}

func TestBestTimeRecommendationsBounded(t *testing.T) {
	now := time.Date(2024, 3, 14, 7, 0, 0, 0, time.UTC)
	from := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	recs := schedule.BestTimeRecommendations(from, to, nil, now)

	// At most one candidate per business hour in the window.
	maxCandidates := 14 * (schedule.BusinessEndHour - schedule.BusinessStartHour)
	if len(recs) == 0 || len(recs) > maxCandidates {
		t.Fatalf("got %d recommendations, want within (0, %d]", len(recs), maxCandidates)
	}

	// Ordered by score descending, ties by earliest start.
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if prev.Score < cur.Score {
			t.Fatalf("not sorted by score at %d: %d < %d", i, prev.Score, cur.Score)
		}
		if prev.Score == cur.Score && prev.Date+prev.StartTime > cur.Date+cur.StartTime {
			t.Fatalf("tie at %d not broken by earliest start", i)
		}
	}
}

func TestBestTimeRecommendationsPrefersQuietDays(t *testing.T) {
	now := time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)
	from := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	// 2024-03-12 is saturated with bookings, 2024-03-13 is free.
	var busy []schedule.ExistingBooking
	for hour := 8; hour < 14; hour++ {
		busy = append(busy, schedule.ExistingBooking{
			Start:  time.Date(2024, 3, 12, hour, 0, 0, 0, time.UTC),
			End:    time.Date(2024, 3, 12, hour+1, 0, 0, 0, time.UTC),
			Status: schedule.StatusConfirmed,
		})
	}

	recs := schedule.BestTimeRecommendations(from, to, busy, now)
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}

	var busyDay, quietDay int
	for _, r := range recs {
		switch r.Date {
		case "2024-03-12":
			if busyDay == 0 || r.Score > busyDay {
				busyDay = r.Score
			}
		case "2024-03-13":
			if quietDay == 0 || r.Score > quietDay {
				quietDay = r.Score
			}
		}
	}
	if quietDay <= busyDay {
		t.Errorf("quiet day best score %d should beat busy day best score %d", quietDay, busyDay)
	}
}

func TestBestTimeRecommendationsEmptyWindow(t *testing.T) {
	now := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	if recs := schedule.BestTimeRecommendations(now, now, nil, now); len(recs) != 0 {
		t.Errorf("inverted/empty window should return no recommendations, got %d", len(recs))
	}
}
