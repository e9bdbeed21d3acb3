package voting

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers and callers match with errors.Is; the
// variants that are all illegal lifecycle transitions wrap ErrInvalidState
// so they can be matched as a category.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrVotingClosed is returned for a submission outside the proposal's
	// voting window or against a revoked proposal.
	ErrVotingClosed = errors.New("voting closed")
	// ErrDuplicateNullifier is returned when a submission carries a
	// nullifier already consumed for the same proposal (double vote).
	ErrDuplicateNullifier = errors.New("nullifier already used")
	// ErrInvalidState is returned for any illegal lifecycle transition.
	ErrInvalidState = errors.New("invalid proposal state")
	// ErrQuorumNotMet is returned when verified votes over eligible votes
	// fall below the proposal's quorum.
	ErrQuorumNotMet = errors.New("quorum not met")
	// ErrUnauthorized is returned when the principal's role does not grant
	// the attempted operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyFinalized rejects tallying a proposal already tallied.
	ErrAlreadyFinalized = fmt.Errorf("%w: already tallied", ErrInvalidState)
	// ErrProposalClosed rejects tallying a proposal closed without a tally.
	ErrProposalClosed = fmt.Errorf("%w: closed without tally", ErrInvalidState)
	// ErrProposalRevoked rejects tallying a revoked proposal.
	ErrProposalRevoked = fmt.Errorf("%w: revoked", ErrInvalidState)
)
