// Package voting implements the ballot submission and tally core: the
// proposal lifecycle, the nullifier-uniqueness invariant, the proof
// verification contract and the transactional quorum/tally computation.
// All multi-step operations run inside a single storage transaction, so a
// failure at any step leaves no partial state behind.
package voting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/types"
)

// Principal is the resolved identity attached to an operation that needs a
// capability check. Authentication happens elsewhere; the core only gates
// on the role string.
type Principal struct {
	WalletAddress string
	Role          string
}

// Service is the voting core. It owns no in-process mutable state: all
// cross-request invariants live in the storage layer, so any number of
// Service instances or worker processes can share one database.
type Service struct {
	store    *storage.Storage
	verifier ProofVerifier
	now      func() time.Time
}

// New creates a voting service on the given store and proof verifier.
func New(store *storage.Storage, verifier ProofVerifier) *Service {
	return &Service{
		store:    store,
		verifier: verifier,
		now:      time.Now,
	}
}

// SetClock overrides the time source, for tests exercising the voting
// window boundaries.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CreateProposalParams carries the caller-supplied fields of a new proposal.
type CreateProposalParams struct {
	ProjectID uuid.UUID
	Title     string
	Choices   json.RawMessage
	Model     string
	Quorum    float64
	StartTime time.Time
	EndTime   time.Time
}

// CreateProposal creates a proposal under a project. The eligible-voter
// count is snapshotted from the project census at this moment and becomes
// the fixed quorum denominator for the proposal's whole life.
func (s *Service) CreateProposal(ctx context.Context, principal Principal, params CreateProposalParams) (*types.Proposal, error) {
	if principal.Role != types.RoleProjectAdmin && principal.Role != types.RolePlatformOwner {
		return nil, ErrUnauthorized
	}
	if params.Title == "" {
		return nil, fmt.Errorf("%w: empty title", ErrValidation)
	}
	if _, ok := ModelFor(params.Model); !ok {
		return nil, fmt.Errorf("%w: unknown tally model %q", ErrValidation, params.Model)
	}
	if params.Quorum < 0 || params.Quorum > 1 {
		return nil, fmt.Errorf("%w: quorum %v outside [0,1]", ErrValidation, params.Quorum)
	}
	if !params.EndTime.After(params.StartTime) {
		return nil, fmt.Errorf("%w: voting window ends before it starts", ErrValidation)
	}
	var proposal *types.Proposal
	err := s.store.Transaction(ctx, func(tx *storage.Storage) error {
		project, err := tx.Project(ctx, params.ProjectID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: project %s", ErrNotFound, params.ProjectID)
			}
			return err
		}
		if project.CensusSize == 0 {
			return fmt.Errorf("%w: project census is empty", ErrValidation)
		}
		proposal = &types.Proposal{
			ID:            uuid.New(),
			ProjectID:     project.ID,
			Title:         params.Title,
			Choices:       params.Choices,
			Model:         params.Model,
			Quorum:        params.Quorum,
			EligibleVotes: project.CensusSize,
			StartTime:     params.StartTime,
			EndTime:       params.EndTime,
			State:         types.ProposalStateDraft,
			CreatedAt:     s.now(),
		}
		return tx.CreateProposal(ctx, proposal)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Proposal returns a proposal by ID.
func (s *Service) Proposal(ctx context.Context, id uuid.UUID) (*types.Proposal, error) {
	p, err := s.store.Proposal(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: proposal %s", ErrNotFound, id)
	}
	return p, err
}

// Proposals lists every proposal. Restricted to admin roles.
func (s *Service) Proposals(ctx context.Context, principal Principal) ([]*types.Proposal, error) {
	if principal.Role != types.RolePlatformOwner && principal.Role != types.RoleProjectAdmin {
		return nil, ErrUnauthorized
	}
	return s.store.ListProposals(ctx)
}

// ProjectProposals lists the proposals of one project.
func (s *Service) ProjectProposals(ctx context.Context, projectID uuid.UUID) ([]*types.Proposal, error) {
	return s.store.ListProjectProposals(ctx, projectID)
}

// RevokeProposal marks a proposal revoked. Only the platform owner holds
// this capability; revocation is legal from any non-terminal state and is
// final. The proposal row is kept for audit.
func (s *Service) RevokeProposal(ctx context.Context, principal Principal, id uuid.UUID) (*types.Proposal, error) {
	if principal.Role != types.RolePlatformOwner {
		return nil, ErrUnauthorized
	}
	var proposal *types.Proposal
	err := s.store.Transaction(ctx, func(tx *storage.Storage) error {
		p, err := tx.Proposal(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: proposal %s", ErrNotFound, id)
			}
			return err
		}
		if err := revocable(p); err != nil {
			return err
		}
		if err := tx.RevokeProposal(ctx, id); err != nil {
			return err
		}
		p.Revoked = true
		p.State = types.ProposalStateRevoked
		proposal = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// Submissions lists every submission of a proposal, verified or not.
func (s *Service) Submissions(ctx context.Context, proposalID uuid.UUID) ([]*types.Submission, error) {
	if _, err := s.Proposal(ctx, proposalID); err != nil {
		return nil, err
	}
	return s.store.ListSubmissions(ctx, proposalID)
}

// Tally returns the finalized tally of a proposal, or ErrNotFound if the
// proposal has not been tallied.
func (s *Service) Tally(ctx context.Context, proposalID uuid.UUID) (*types.Tally, error) {
	t, err := s.store.TallyByProposal(ctx, proposalID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: tally for proposal %s", ErrNotFound, proposalID)
	}
	return t, err
}
