package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
)

// CreateSubmission inserts a new submission. The unique index on
// (proposal_id, nullifier) makes this the enforcement point for the
// double-voting defense: under concurrent inserts carrying the same
// nullifier, exactly one commit wins and the rest get ErrDuplicateKey.
func (s *Storage) CreateSubmission(ctx context.Context, sub *types.Submission) error {
	return mapErr(s.db.WithContext(ctx).Create(sub).Error)
}

// SubmissionByNullifier looks up the submission for a (proposal, nullifier)
// pair. Returns ErrNotFound if the nullifier has not been consumed.
func (s *Storage) SubmissionByNullifier(ctx context.Context, proposalID uuid.UUID, nullifier types.HexBytes) (*types.Submission, error) {
	sub := &types.Submission{}
	err := s.db.WithContext(ctx).
		Where("proposal_id = ? AND nullifier = ?", proposalID, []byte(nullifier)).
		First(sub).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return sub, nil
}

// ListSubmissions returns all submissions for a proposal, verified or not,
// in insertion order.
func (s *Storage) ListSubmissions(ctx context.Context, proposalID uuid.UUID) ([]*types.Submission, error) {
	var subs []*types.Submission
	err := s.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("created_at ASC").
		Find(&subs).Error
	return subs, mapErr(err)
}

// ListVerifiedSubmissions returns the submissions that passed proof
// verification, ordered by nullifier so the set has a canonical order for
// aggregate hashing.
func (s *Storage) ListVerifiedSubmissions(ctx context.Context, proposalID uuid.UUID) ([]*types.Submission, error) {
	var subs []*types.Submission
	err := s.db.WithContext(ctx).
		Where("proposal_id = ? AND verified = ?", proposalID, true).
		Order("nullifier ASC").
		Find(&subs).Error
	return subs, mapErr(err)
}
