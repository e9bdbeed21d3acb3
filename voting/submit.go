package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/types"
)

// SubmitBallot runs the submission pipeline for one ballot as a single
// transaction: load the proposal, enforce the lifecycle guard, verify the
// proof and insert the submission. The nullifier-uniqueness check is the
// unique index on (proposal_id, nullifier) hit by the insert itself, so two
// concurrent submissions with the same nullifier cannot both commit; the
// loser gets ErrDuplicateNullifier.
//
// A proof that fails verification is not an error: the submission is
// persisted with Verified=false and a nil VerifiedAt, kept for audit, and
// simply excluded from quorum and results at tally time.
func (s *Service) SubmitBallot(ctx context.Context, proposalID uuid.UUID, proof, commitment, nullifier types.HexBytes) (*types.Submission, error) {
	if len(nullifier) == 0 {
		return nil, fmt.Errorf("%w: empty nullifier", ErrValidation)
	}
	if len(commitment) == 0 {
		return nil, fmt.Errorf("%w: empty choice commitment", ErrValidation)
	}
	var sub *types.Submission
	err := s.store.Transaction(ctx, func(tx *storage.Storage) error {
		proposal, err := tx.Proposal(ctx, proposalID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: proposal %s", ErrNotFound, proposalID)
			}
			return err
		}
		now := s.now()
		if err := acceptsSubmission(proposal, now); err != nil {
			return err
		}
		// Materialize the implicit draft -> open transition.
		if proposal.State == types.ProposalStateDraft {
			if err := tx.OpenProposal(ctx, proposal.ID); err != nil {
				return err
			}
		}
		sub = &types.Submission{
			ID:         uuid.New(),
			ProposalID: proposal.ID,
			Proof:      proof,
			Commitment: commitment,
			Nullifier:  nullifier,
			Verified:   s.verifier.Verify(proof),
			CreatedAt:  now,
		}
		if sub.Verified {
			verifiedAt := now
			sub.VerifiedAt = &verifiedAt
		}
		if err := tx.CreateSubmission(ctx, sub); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrDuplicateNullifier
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debugw("ballot submitted",
		"proposal", proposalID.String(),
		"nullifier", sub.Nullifier.String(),
		"verified", sub.Verified,
	)
	return sub, nil
}
