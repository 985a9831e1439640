package schedule

import "time"

// HeatmapCell is one aggregated usage bucket, for display only.
type HeatmapCell struct {
	Weekday int `json:"weekday"` // 0 = Sunday .. 6 = Saturday
	Hour    int `json:"hour"`    // 0-23
	Count   int `json:"count"`
}

// UsageHeatmap aggregates historical usage per day-of-week and hour.
// Each blocking booking increments every hour bucket it touches. The full
// 7x24 grid is returned in weekday-then-hour order so renderers do not need
// to fill gaps.
func UsageHeatmap(bookings []ExistingBooking) []HeatmapCell {
	var counts [7][24]int

	for _, b := range bookings {
		if !b.Blocks() || !b.End.After(b.Start) {
			continue
		}
		first := time.Date(b.Start.Year(), b.Start.Month(), b.Start.Day(), b.Start.Hour(), 0, 0, 0, b.Start.Location())
		for t := first; t.Before(b.End); t = t.Add(time.Hour) {
			counts[int(t.Weekday())][t.Hour()]++
		}
	}

	cells := make([]HeatmapCell, 0, 7*24)
	for wd := 0; wd < 7; wd++ {
		for hour := 0; hour < 24; hour++ {
			cells = append(cells, HeatmapCell{Weekday: wd, Hour: hour, Count: counts[wd][hour]})
		}
	}
	return cells
}
