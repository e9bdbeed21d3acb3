package api

import (
	"net/http"

	"github.com/zkgov/ballotbox/types"
	"github.com/zkgov/ballotbox/voting"
)

// tallyProposal computes and persists the final tally (admin roles only).
// POST /proposals/{proposalId}/tally
func (a *API) tallyProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUUID(w, r, ProposalURLParam)
	if !ok {
		return
	}
	p := principal(r)
	if p.Role != types.RolePlatformOwner && p.Role != types.RoleProjectAdmin {
		fromDomainError(voting.ErrUnauthorized).Write(w)
		return
	}
	tally, err := a.voting.TallyProposal(r.Context(), id)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, tally)
}

// tally returns the persisted tally of a proposal.
// GET /proposals/{proposalId}/tally
func (a *API) tally(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUUID(w, r, ProposalURLParam)
	if !ok {
		return
	}
	tally, err := a.voting.Tally(r.Context(), id)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, tally)
}
