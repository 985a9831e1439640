package booking

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/project"
)

type fakeRepo struct {
	bookings map[string]*Booking
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.nextID++
	b.ID = "booking-" + strconv.Itoa(r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, equipmentID string, start, end time.Time, excludeID string) (bool, error) {
	for _, b := range r.bookings {
		if b.EquipmentID != equipmentID || b.ID == excludeID || b.Status == StatusCancelled {
			continue
		}
		if start.Before(b.EndTime) && end.After(b.StartTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListRange(_ context.Context, equipmentID string, from, to time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if equipmentID != "" && b.EquipmentID != equipmentID {
			continue
		}
		if b.Status == StatusCancelled {
			continue
		}
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkCompletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == StatusConfirmed && !b.EndTime.After(cutoff) {
			b.Status = StatusCompleted
			n++
		}
	}
	return n, nil
}

type fakeEquipment struct {
	items map[string]*equipment.Equipment
}

func (f *fakeEquipment) GetByID(_ context.Context, id string) (*equipment.Equipment, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, equipment.ErrNotFound
	}
	return e, nil
}

type fakeProjects struct {
	items   map[string]*project.Project
	touched []string
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*project.Project, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, project.ErrNotFound
	}
	return p, nil
}

func (f *fakeProjects) Touch(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeProjects) {
	t.Helper()
	repo := newFakeRepo()
	eq := &fakeEquipment{items: map[string]*equipment.Equipment{
		"eq-1": {ID: "eq-1", Name: "扫描电子显微镜", Category: "电镜", IsActive: true},
		"eq-2": {ID: "eq-2", Name: "旧款离心机", Category: "离心机", IsActive: false},
	}}
	projects := &fakeProjects{items: map[string]*project.Project{
		"proj-1": {ID: "proj-1", Name: "新型纳米材料表征研究", IsActive: true},
	}}
	return NewService(repo, eq, projects), repo, projects
}

func futureRange(t *testing.T, startOffset, d time.Duration) (time.Time, time.Time) {
	t.Helper()
	start := time.Now().UTC().Add(startOffset).Truncate(time.Minute)
	return start, start.Add(d)
}

func TestCreateBooking(t *testing.T) {
	svc, _, projects := newTestService(t)
	ctx := context.Background()

	start, end := futureRange(t, 24*time.Hour, 2*time.Hour)

	b, err := svc.Create(ctx, CreateRequest{
		UserID:      "user-1",
		EquipmentID: "eq-1",
		ProjectID:   "proj-1",
		Purpose:     "样品表面形貌观察",
		StartTime:   start,
		EndTime:     end,
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, b.Status)
	require.Equal(t, "扫描电子显微镜", b.EquipmentName)
	require.NotEmpty(t, b.ID)
	require.Equal(t, []string{"proj-1"}, projects.touched)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, end := futureRange(t, 24*time.Hour, 2*time.Hour)

	cases := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name: "end before start",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-1", Purpose: "观察",
				StartTime: end, EndTime: start,
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "zero duration",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-1", Purpose: "观察",
				StartTime: start, EndTime: start,
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "start in the past",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-1", Purpose: "观察",
				StartTime: time.Now().UTC().Add(-time.Hour), EndTime: end,
			},
			wantErr: ErrStartTimePast,
		},
		{
			name: "empty purpose",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-1", Purpose: "   ",
				StartTime: start, EndTime: end,
			},
			wantErr: ErrPurposeRequired,
		},
		{
			name: "unknown equipment",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-404", Purpose: "观察",
				StartTime: start, EndTime: end,
			},
			wantErr: ErrEquipmentNotFound,
		},
		{
			name: "inactive equipment",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-2", Purpose: "观察",
				StartTime: start, EndTime: end,
			},
			wantErr: ErrEquipmentInactive,
		},
		{
			name: "unknown project",
			req: CreateRequest{
				UserID: "user-1", EquipmentID: "eq-1", ProjectID: "proj-404", Purpose: "观察",
				StartTime: start, EndTime: end,
			},
			wantErr: ErrProjectNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateBookingOverlap(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, end := futureRange(t, 24*time.Hour, 2*time.Hour)

	_, err := svc.Create(ctx, CreateRequest{
		UserID: "user-1", EquipmentID: "eq-1", Purpose: "观察",
		StartTime: start, EndTime: end,
	})
	require.NoError(t, err)

	// Overlapping range on the same equipment is rejected.
	_, err = svc.Create(ctx, CreateRequest{
		UserID: "user-2", EquipmentID: "eq-1", Purpose: "检测",
		StartTime: start.Add(time.Hour), EndTime: end.Add(time.Hour),
	})
	require.ErrorIs(t, err, ErrTimeConflict)

	// Back-to-back is fine: ranges are half-open.
	_, err = svc.Create(ctx, CreateRequest{
		UserID: "user-2", EquipmentID: "eq-1", Purpose: "检测",
		StartTime: end, EndTime: end.Add(time.Hour),
	})
	require.NoError(t, err)
}

func TestUpdateBookingPermissions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, end := futureRange(t, 24*time.Hour, 2*time.Hour)

	b, err := svc.Create(ctx, CreateRequest{
		UserID: "user-1", EquipmentID: "eq-1", Purpose: "观察",
		StartTime: start, EndTime: end,
	})
	require.NoError(t, err)

	confirmed := string(StatusConfirmed)
	cancelled := string(StatusCancelled)

	// A stranger cannot touch the booking at all.
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &cancelled}, "user-2", false)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// The owner cannot confirm their own booking.
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &confirmed}, "user-1", false)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// The owner can cancel.
	updated, err := svc.Update(ctx, b.ID, UpdateRequest{Status: &cancelled}, "user-1", false)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, updated.Status)

	// An admin can confirm.
	updated, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &confirmed}, "admin-1", true)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, updated.Status)

	bad := "archived"
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Status: &bad}, "admin-1", true)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCompleteFinished(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-3 * time.Hour)
	repo.bookings["old-confirmed"] = &Booking{
		ID: "old-confirmed", EquipmentID: "eq-1", UserID: "user-1",
		StartTime: past, EndTime: past.Add(time.Hour), Status: StatusConfirmed,
	}
	repo.bookings["old-pending"] = &Booking{
		ID: "old-pending", EquipmentID: "eq-1", UserID: "user-1",
		StartTime: past, EndTime: past.Add(time.Hour), Status: StatusPending,
	}

	n, err := svc.CompleteFinished(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.Equal(t, StatusCompleted, repo.bookings["old-confirmed"].Status)
	require.Equal(t, StatusPending, repo.bookings["old-pending"].Status)
}

func TestUsageStatsSnapshot(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	recent := time.Now().UTC().Add(-2 * 24 * time.Hour)
	repo.bookings["b-1"] = &Booking{
		ID: "b-1", EquipmentID: "eq-1", UserID: "user-1",
		StartTime: recent, EndTime: recent.Add(2 * time.Hour), Status: StatusCompleted,
	}

	cells, computedAt, err := svc.UsageStats(ctx)
	require.NoError(t, err)
	require.False(t, computedAt.IsZero())
	require.Len(t, cells, 7*24)

	var total int
	for _, cell := range cells {
		total += cell.Count
	}
	require.Positive(t, total)
}

func TestDeleteBookingPermissions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, end := futureRange(t, 24*time.Hour, time.Hour)

	b, err := svc.Create(ctx, CreateRequest{
		UserID: "user-1", EquipmentID: "eq-1", Purpose: "观察",
		StartTime: start, EndTime: end,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID, "user-2", false)
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, b.ID, "user-1", false))

	err = svc.Delete(ctx, b.ID, "user-1", false)
	require.True(t, errors.Is(err, ErrNotFound))
}
