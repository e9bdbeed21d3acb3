package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
)

// CreateTally inserts the tally record for a proposal. The unique index on
// proposal_id backs up the lifecycle guard: a second tally for the same
// proposal can never commit.
func (s *Storage) CreateTally(ctx context.Context, t *types.Tally) error {
	return mapErr(s.db.WithContext(ctx).Create(t).Error)
}

// TallyByProposal retrieves the tally of a proposal, or ErrNotFound.
func (s *Storage) TallyByProposal(ctx context.Context, proposalID uuid.UUID) (*types.Tally, error) {
	t := &types.Tally{}
	err := s.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		First(t).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}
