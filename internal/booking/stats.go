package booking

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/pkg/debounce"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

// usageStats caches the platform-wide usage heatmap. Booking writes call
// invalidate, which coalesces bursts through a debouncer into a single
// background recompute. Readers always get the last finished snapshot.
type usageStats struct {
	repo      Repository
	debouncer *debounce.Debouncer

	mu         sync.RWMutex
	cells      []schedule.HeatmapCell
	computedAt time.Time
}

func newUsageStats(repo Repository, interval time.Duration) *usageStats {
	return &usageStats{
		repo:      repo,
		debouncer: debounce.New(interval),
	}
}

func (u *usageStats) get(ctx context.Context) ([]schedule.HeatmapCell, time.Time, error) {
	u.mu.RLock()
	cells, at := u.cells, u.computedAt
	u.mu.RUnlock()

	if cells != nil {
		return cells, at, nil
	}

	// First use: compute synchronously.
	if err := u.refresh(ctx); err != nil {
		return nil, time.Time{}, err
	}

	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cells, u.computedAt, nil
}

// invalidate schedules a background refresh. Repeated calls within the
// debounce interval collapse into one recompute.
func (u *usageStats) invalidate() {
	u.debouncer.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.refresh(ctx); err != nil {
			log.Printf("usage stats refresh failed: %v", err)
		}
	})
}

func (u *usageStats) refresh(ctx context.Context) error {
	now := time.Now().UTC()
	bookings, err := u.repo.ListRange(ctx, "", now.Add(-statsWindow), now)
	if err != nil {
		return err
	}

	cells := schedule.UsageHeatmap(ToScheduleBookings(bookings))

	u.mu.Lock()
	u.cells = cells
	u.computedAt = now
	u.mu.Unlock()

	return nil
}
