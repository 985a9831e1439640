package project

import (
	"context"
	"strings"

	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

type CreateRequest struct {
	Name     string
	Category string
	Keywords []string
	Members  []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, filter Filter) ([]*Project, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Project, error)
	Delete(ctx context.Context, id string) error

	// Touch bumps a project's last active timestamp. Called whenever a
	// booking is attributed to the project.
	Touch(ctx context.Context, id string) error

	// ActiveInfos returns all active projects in the shape the suggestion
	// engine consumes.
	ActiveInfos(ctx context.Context) ([]schedule.ProjectInfo, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	p := &Project{
		Name:     name,
		Category: strings.TrimSpace(req.Category),
		Keywords: cleanList(req.Keywords),
		Members:  cleanList(req.Members),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Project, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		p.Name = name
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Keywords != nil {
		p.Keywords = cleanList(*req.Keywords)
	}
	if req.Members != nil {
		p.Members = cleanList(*req.Members)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Touch(ctx context.Context, id string) error {
	return s.repo.Touch(ctx, id)
}

func (s *service) ActiveInfos(ctx context.Context) ([]schedule.ProjectInfo, error) {
	projects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]schedule.ProjectInfo, len(projects))
	for i, p := range projects {
		infos[i] = p.Info()
	}
	return infos, nil
}

// cleanList trims entries and drops empty ones, preserving order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
