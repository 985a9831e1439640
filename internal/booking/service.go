package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/debounce"
	"github.com/labgrid/equipment-booking-backend/internal/project"
	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

// statsWindow is how far back the usage snapshot looks.
const statsWindow = 30 * 24 * time.Hour

// EquipmentGetter is the slice of the equipment service the booking module
// needs.
type EquipmentGetter interface {
	GetByID(ctx context.Context, id string) (*equipment.Equipment, error)
}

// ProjectTracker is the slice of the project service the booking module
// needs: existence checks plus activity bumps on attribution.
type ProjectTracker interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
	Touch(ctx context.Context, id string) error
}

type CreateRequest struct {
	UserID      string
	EquipmentID string
	ProjectID   string
	Purpose     string
	StartTime   time.Time
	EndTime     time.Time
}

type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
	Purpose   *string
	ProjectID *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isAdmin bool) (*Booking, error)
	Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error

	// InRange returns the engine's view of all blocking bookings for the
	// equipment intersecting [from, to). An empty equipment ID covers all
	// equipment.
	InRange(ctx context.Context, equipmentID string, from, to time.Time) ([]schedule.ExistingBooking, error)

	// UsageStats returns the cached platform-wide usage heatmap and the time
	// it was computed. The snapshot is refreshed lazily on first use and
	// re-computed after booking writes, coalesced through a debouncer so a
	// burst of writes causes a single refresh.
	UsageStats(ctx context.Context) ([]schedule.HeatmapCell, time.Time, error)

	// CompleteFinished marks confirmed bookings whose end time has passed as
	// completed. Invoked periodically by the scheduler.
	CompleteFinished(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	equipment EquipmentGetter
	projects  ProjectTracker
	stats     *usageStats
}

func NewService(repo Repository, equipmentSvc EquipmentGetter, projectSvc ProjectTracker) Service {
	return &service{
		repo:      repo,
		equipment: equipmentSvc,
		projects:  projectSvc,
		stats:     newUsageStats(repo, debounce.DefaultInterval),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate Time Range
	if req.EndTime.Before(req.StartTime) || req.EndTime.Equal(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	// Strict check: StartTime cannot be in the past
	if req.StartTime.Before(time.Now().UTC()) {
		return nil, ErrStartTimePast
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, ErrPurposeRequired
	}

	// 2. Validate Equipment Exists and is bookable
	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipment.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if !eq.IsActive {
		return nil, ErrEquipmentInactive
	}

	// 3. Validate Project if attributed
	var projectID *string
	if req.ProjectID != "" {
		if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
			if errors.Is(err, project.ErrNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
		id := req.ProjectID
		projectID = &id
	}

	// 4. Check for Overlaps
	hasOverlap, err := s.repo.HasOverlap(ctx, req.EquipmentID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 5. Create Booking
	b := &Booking{
		EquipmentID: req.EquipmentID,
		UserID:      req.UserID,
		ProjectID:   projectID,
		Purpose:     purpose,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      StatusPending, // Default status
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.EquipmentName = eq.Name

	// Bump project activity (best effort).
	if projectID != nil {
		if err := s.projects.Touch(ctx, *projectID); err != nil {
			log.Printf("failed to touch project %s: %v", *projectID, err)
		}
	}

	s.stats.invalidate()

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := b.UserID == updaterUserID
	if !isAdmin && !isOwner {
		return nil, ErrPermissionDenied
	}

	// Prepare new values
	newStart := b.StartTime
	newEnd := b.EndTime
	timeChanged := false

	if req.StartTime != nil {
		newStart = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if newEnd.Before(newStart) || newEnd.Equal(newStart) {
			return nil, ErrInvalidTimeRange
		}

		// Check past time for updates
		if req.StartTime != nil && req.StartTime.Before(time.Now().UTC()) {
			return nil, ErrStartTimePast
		}

		// Check Overlap excluding current booking
		hasOverlap, err := s.repo.HasOverlap(ctx, b.EquipmentID, newStart, newEnd, b.ID)
		if err != nil {
			return nil, err
		}
		if hasOverlap {
			return nil, ErrTimeConflict
		}
		b.StartTime = newStart
		b.EndTime = newEnd
	}

	if req.Purpose != nil {
		purpose := strings.TrimSpace(*req.Purpose)
		if purpose == "" {
			return nil, ErrPurposeRequired
		}
		b.Purpose = purpose
	}

	if req.ProjectID != nil {
		if *req.ProjectID != "" {
			if _, err := s.projects.GetByID(ctx, *req.ProjectID); err != nil {
				if errors.Is(err, project.ErrNotFound) {
					return nil, ErrProjectNotFound
				}
				return nil, err
			}
			pid := *req.ProjectID
			b.ProjectID = &pid
		} else {
			b.ProjectID = nil
		}
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}

		// Business Logic: the booking owner can only cancel; status review
		// (confirm, complete) is an admin operation.
		if !isAdmin && st != StatusCancelled {
			return nil, ErrPermissionDenied
		}
		b.Status = st
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.stats.invalidate()

	return b, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && b.UserID != deleterUserID {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.stats.invalidate()

	return nil
}

func (s *service) InRange(ctx context.Context, equipmentID string, from, to time.Time) ([]schedule.ExistingBooking, error) {
	bookings, err := s.repo.ListRange(ctx, equipmentID, from, to)
	if err != nil {
		return nil, err
	}
	return ToScheduleBookings(bookings), nil
}

func (s *service) UsageStats(ctx context.Context) ([]schedule.HeatmapCell, time.Time, error) {
	return s.stats.get(ctx)
}

func (s *service) CompleteFinished(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkCompletedBefore(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.stats.invalidate()
	}
	return n, nil
}
