package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
)

// CreateProposal persists a new proposal.
func (s *Storage) CreateProposal(ctx context.Context, p *types.Proposal) error {
	return mapErr(s.db.WithContext(ctx).Create(p).Error)
}

// Proposal retrieves a proposal by ID. Returns ErrNotFound if absent.
func (s *Storage) Proposal(ctx context.Context, id uuid.UUID) (*types.Proposal, error) {
	p := &types.Proposal{}
	if err := s.db.WithContext(ctx).First(p, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// ListProposals returns every proposal, newest first.
func (s *Storage) ListProposals(ctx context.Context) ([]*types.Proposal, error) {
	var proposals []*types.Proposal
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, mapErr(err)
}

// ListProjectProposals returns the proposals of a project, newest first.
func (s *Storage) ListProjectProposals(ctx context.Context, projectID uuid.UUID) ([]*types.Proposal, error) {
	var proposals []*types.Proposal
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, mapErr(err)
}

// OpenProposal materializes the implicit draft -> open transition on the
// proposal row. Only rows still in draft are touched.
func (s *Storage) OpenProposal(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&types.Proposal{}).
		Where("id = ? AND state = ?", id, types.ProposalStateDraft).
		Update("state", types.ProposalStateOpen)
	return mapErr(res.Error)
}

// RevokeProposal marks a proposal revoked and moves it to the revoked state.
func (s *Storage) RevokeProposal(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&types.Proposal{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"revoked": true,
			"state":   types.ProposalStateRevoked,
		})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FinalizeProposal moves a proposal to the tallied state and marks it
// finalized. It must be called inside the same transaction that inserts
// the tally record.
func (s *Storage) FinalizeProposal(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Model(&types.Proposal{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"state":     types.ProposalStateTallied,
			"finalized": true,
		})
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
