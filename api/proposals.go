package api

import (
	"encoding/json"
	"net/http"

	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/voting"
)

// createProposal creates a proposal under a project.
// POST /projects/{projectId}/proposals
func (a *API) createProposal(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlParamUUID(w, r, ProjectURLParam)
	if !ok {
		return
	}
	req := &CreateProposalRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	proposal, err := a.voting.CreateProposal(r.Context(), principal(r), voting.CreateProposalParams{
		ProjectID: projectID,
		Title:     req.Title,
		Choices:   req.Choices,
		Model:     req.Model,
		Quorum:    req.Quorum,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	log.Infow("new proposal",
		"id", proposal.ID.String(),
		"project", proposal.ProjectID.String(),
		"model", proposal.Model,
		"eligibleVotes", proposal.EligibleVotes,
	)
	httpWriteJSON(w, proposal)
}

// proposal returns a single proposal.
// GET /proposals/{proposalId}
func (a *API) proposal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUUID(w, r, ProposalURLParam)
	if !ok {
		return
	}
	proposal, err := a.voting.Proposal(r.Context(), id)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, proposal)
}

// listProposals returns every proposal (admin roles only).
// GET /proposals
func (a *API) listProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := a.voting.Proposals(r.Context(), principal(r))
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, proposals)
}

// listProjectProposals returns the proposals of one project.
// GET /projects/{projectId}/proposals
func (a *API) listProjectProposals(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlParamUUID(w, r, ProjectURLParam)
	if !ok {
		return
	}
	proposals, err := a.voting.ProjectProposals(r.Context(), projectID)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, proposals)
}

// revokeProposal marks a proposal revoked (platform owner only).
// POST /proposals/{proposalId}/revoke
func (a *API) revokeProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUUID(w, r, ProposalURLParam)
	if !ok {
		return
	}
	proposal, err := a.voting.RevokeProposal(r.Context(), principal(r), id)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	log.Infow("proposal revoked", "id", proposal.ID.String(), "by", principal(r).WalletAddress)
	httpWriteJSON(w, proposal)
}
