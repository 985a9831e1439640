package schedule

import (
	"sort"
	"strings"
	"time"
)

// Recommendation is a scored, system-proposed time window.
type Recommendation struct {
	Date      string `json:"date"`       // 2006-01-02
	StartTime string `json:"start_time"` // 15:04
	EndTime   string `json:"end_time"`
	Score     int    `json:"score"` // 0-100
	Reason    string `json:"reason"`
}

// Scoring constants. Every bonus and penalty is a named, independently
// testable term so the textual reason stays truthful.
const (
	BusinessStartHour = 8
	BusinessEndHour   = 20
	CoreStartHour     = 10
	CoreEndHour       = 16

	baseScore = 70

	// Windows sooner than three days out get the urgency bonus.
	soonBonus     = 10
	soonThreshold = 72 * time.Hour
	nearBonus     = 4
	nearThreshold = 7 * 24 * time.Hour

	// Low-contention bonus by number of blocking bookings on the same day.
	freeDayBonus   = 10
	quietDayBonus  = 6
	quietDayLimit  = 2
	normalDayBonus = 2
	normalDayLimit = 4

	coreHoursBonus   = 8
	offPeakPenalty   = 5
	offPeakStartHour = 9
	offPeakEndHour   = 18

	// DefaultRecommendationLimit is how many entries a UI typically shows.
	// BestTimeRecommendations returns the full ranked list regardless.
	DefaultRecommendationLimit = 3
)

// BestTimeRecommendations proposes ranked one-hour windows within business
// hours of [from, to) that do not intersect any blocking booking and start
// strictly after now. The full ranked list is returned, highest score first,
// ties broken by earliest start. Identical inputs always produce identical
// output; the input slice is never mutated.
func BestTimeRecommendations(from, to time.Time, bookings []ExistingBooking, now time.Time) []Recommendation {
	if !to.After(from) {
		return []Recommendation{}
	}

	bookingsByDay := countBookingsByDay(bookings)

	recs := []Recommendation{}
	for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		dayCount := bookingsByDay[day.Format(dateFormat)]

		for hour := BusinessStartHour; hour < BusinessEndHour; hour++ {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			end := start.Add(time.Hour)

			if start.Before(from) || end.After(to) {
				continue
			}
			// Past-time rule: already-started windows are never proposed.
			if !start.After(now) {
				continue
			}
			if intersectsAny(start, end, bookings) {
				continue
			}

			score, reason := scoreWindow(start, dayCount, now)
			recs = append(recs, Recommendation{
				Date:      start.Format(dateFormat),
				StartTime: start.Format(timeLabelFormat),
				EndTime:   end.Format(timeLabelFormat),
				Score:     score,
				Reason:    reason,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].Date != recs[j].Date {
			return recs[i].Date < recs[j].Date
		}
		return recs[i].StartTime < recs[j].StartTime
	})

	return recs
}

// scoreWindow applies the named scoring terms to one candidate window and
// builds the reason text from the bonuses that actually fired.
func scoreWindow(start time.Time, dayCount int, now time.Time) (int, string) {
	score := baseScore
	var reasons []string

	// Recency: sooner windows are worth more to an urgent booker.
	switch ahead := start.Sub(now); {
	case ahead < soonThreshold:
		score += soonBonus
		reasons = append(reasons, "时间临近，可尽快安排使用")
	case ahead < nearThreshold:
		score += nearBonus
	}

	// Contention: spread load onto lightly booked days.
	switch {
	case dayCount == 0:
		score += freeDayBonus
		reasons = append(reasons, "该时段历史使用较少")
	case dayCount <= quietDayLimit:
		score += quietDayBonus
		reasons = append(reasons, "该时段历史使用较少")
	case dayCount <= normalDayLimit:
		score += normalDayBonus
	}

	// Time of day: core working hours beat early mornings and evenings.
	hour := start.Hour()
	switch {
	case hour >= CoreStartHour && hour < CoreEndHour:
		score += coreHoursBonus
		reasons = append(reasons, "处于核心工作时段")
	case hour < offPeakStartHour || hour >= offPeakEndHour:
		score -= offPeakPenalty
		reasons = append(reasons, "非高峰时段")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "该时段空闲，可正常预约")
	}
	return score, strings.Join(reasons, "，")
}

// intersectsAny reports whether [start, end) overlaps any blocking booking.
func intersectsAny(start, end time.Time, bookings []ExistingBooking) bool {
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		if overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// countBookingsByDay aggregates blocking bookings per calendar day,
// used as a proxy for contention.
func countBookingsByDay(bookings []ExistingBooking) map[string]int {
	counts := make(map[string]int, len(bookings))
	for _, b := range bookings {
		if !b.Blocks() {
			continue
		}
		counts[b.Start.Format(dateFormat)]++
	}
	return counts
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
