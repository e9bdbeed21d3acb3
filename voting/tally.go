package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/types"
)

// TallyProposal computes and persists the final tally of a proposal as one
// transaction: lifecycle guard, quorum check over verified submissions,
// model-specific aggregation, tally insert and the transition to the
// tallied state. The insert and the state transition commit together or
// not at all, so a tally can never exist for a non-tallied proposal.
//
// Two concurrent calls race on the row state inside their transactions:
// one commits, the other observes ErrAlreadyFinalized (the unique index on
// tallies.proposal_id backs this up at the storage layer).
func (s *Service) TallyProposal(ctx context.Context, proposalID uuid.UUID) (*types.Tally, error) {
	var tally *types.Tally
	err := s.store.Transaction(ctx, func(tx *storage.Storage) error {
		proposal, err := tx.Proposal(ctx, proposalID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: proposal %s", ErrNotFound, proposalID)
			}
			return err
		}
		if err := talliable(proposal); err != nil {
			return err
		}
		subs, err := tx.ListVerifiedSubmissions(ctx, proposalID)
		if err != nil {
			return err
		}
		// The denominator was snapshotted at proposal creation; a live
		// recount would be a moving target for results manipulation.
		if proposal.EligibleVotes == 0 {
			return fmt.Errorf("%w: proposal has no eligible votes recorded", ErrValidation)
		}
		ratio := float64(len(subs)) / float64(proposal.EligibleVotes)
		if ratio < proposal.Quorum {
			return fmt.Errorf("%w: %d/%d < %v",
				ErrQuorumNotMet, len(subs), proposal.EligibleVotes, proposal.Quorum)
		}
		model, ok := ModelFor(proposal.Model)
		if !ok {
			return fmt.Errorf("%w: unknown tally model %q", ErrValidation, proposal.Model)
		}
		results, err := model.Aggregate(proposal, subs)
		if err != nil {
			return err
		}
		tally = &types.Tally{
			ID:            uuid.New(),
			ProposalID:    proposal.ID,
			AggregateHash: aggregateHash(subs),
			Results:       results,
			CreatedAt:     s.now(),
		}
		if err := tx.CreateTally(ctx, tally); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				return ErrAlreadyFinalized
			}
			return err
		}
		return tx.FinalizeProposal(ctx, proposal.ID)
	})
	if err != nil {
		return nil, err
	}
	log.Infow("proposal tallied",
		"proposal", proposalID.String(),
		"aggregateHash", tally.AggregateHash.String(),
	)
	return tally, nil
}

// aggregateHash is a deterministic keccak256 over the verified submission
// set. Submissions arrive ordered by nullifier, so re-tallying the same
// data always yields the same hash.
func aggregateHash(subs []*types.Submission) types.HexBytes {
	var buf []byte
	for _, sub := range subs {
		buf = append(buf, sub.Nullifier...)
		buf = append(buf, sub.Commitment...)
	}
	return crypto.Keccak256(buf)
}
