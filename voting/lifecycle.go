package voting

import (
	"time"

	"github.com/zkgov/ballotbox/types"
)

// The proposal lifecycle is draft -> open -> closed | revoked | tallied.
// Draft -> open happens implicitly when the clock enters the voting window;
// it is materialized on the row the first time a submission is accepted.
// Revocation is legal from any non-terminal state and is final. Only the
// tally engine moves a proposal to tallied.

// acceptsSubmission reports whether a ballot may be cast right now.
func acceptsSubmission(p *types.Proposal, now time.Time) error {
	if p.Revoked || p.State.Terminal() {
		return ErrVotingClosed
	}
	if now.Before(p.StartTime) || !now.Before(p.EndTime) {
		return ErrVotingClosed
	}
	return nil
}

// revocable reports whether the proposal may still be revoked.
func revocable(p *types.Proposal) error {
	if p.Revoked || p.State.Terminal() {
		return ErrInvalidState
	}
	return nil
}

// talliable reports whether the tally engine may finalize the proposal.
// The distinct terminal conditions map to distinct errors so callers can
// tell an already-tallied proposal from one closed without a tally.
func talliable(p *types.Proposal) error {
	switch {
	case p.Revoked:
		return ErrProposalRevoked
	case p.Finalized || p.State == types.ProposalStateTallied:
		return ErrAlreadyFinalized
	case p.State == types.ProposalStateClosed:
		return ErrProposalClosed
	}
	return nil
}
