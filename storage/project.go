package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
)

// CreateProject persists a new project.
func (s *Storage) CreateProject(ctx context.Context, p *types.Project) error {
	return mapErr(s.db.WithContext(ctx).Create(p).Error)
}

// Project retrieves a project by ID. Returns ErrNotFound if absent.
func (s *Storage) Project(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	p := &types.Project{}
	if err := s.db.WithContext(ctx).First(p, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// ListProjects returns every project, newest first.
func (s *Storage) ListProjects(ctx context.Context) ([]*types.Project, error) {
	var projects []*types.Project
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, mapErr(err)
}
