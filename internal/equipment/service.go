package equipment

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name          string
	Category      string
	Location      string
	ContactUserID string
	Description   string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Equipment, error)
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Equipment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Equipment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	e := &Equipment{
		Name:     name,
		Category: strings.TrimSpace(req.Category),
		Location: strings.TrimSpace(req.Location),
		IsActive: true,
	}
	if req.ContactUserID != "" {
		id := req.ContactUserID
		e.ContactUserID = &id
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		e.Description = &d
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		e.Name = name
	}
	if req.Category != nil {
		e.Category = strings.TrimSpace(*req.Category)
	}
	if req.Location != nil {
		e.Location = strings.TrimSpace(*req.Location)
	}
	if req.ContactUserID != nil {
		if *req.ContactUserID != "" {
			id := *req.ContactUserID
			e.ContactUserID = &id
		} else {
			e.ContactUserID = nil
		}
	}
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			e.Description = &d
		} else {
			e.Description = nil
		}
	}
	if req.PhotoFileID != nil {
		if *req.PhotoFileID != "" {
			id := *req.PhotoFileID
			e.PhotoFileID = &id
		} else {
			e.PhotoFileID = nil
		}
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
