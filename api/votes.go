package api

import (
	"encoding/json"
	"net/http"
)

// submitVote casts a ballot against a proposal. The request is anonymous:
// eligibility is established by the proof artifact, and the nullifier
// prevents the same credential from voting twice.
// POST /proposals/{proposalId}/votes
func (a *API) submitVote(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := urlParamUUID(w, r, ProposalURLParam)
	if !ok {
		return
	}
	vote := &Vote{}
	if err := json.NewDecoder(r.Body).Decode(vote); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	sub, err := a.voting.SubmitBallot(r.Context(), proposalID, vote.Proof, vote.Commitment, vote.Nullifier)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, &SubmissionResponse{
		ID:         sub.ID,
		ProposalID: sub.ProposalID,
		Nullifier:  sub.Nullifier,
		Verified:   sub.Verified,
		VerifiedAt: sub.VerifiedAt,
	})
}

// listVotes returns every submission of a proposal, for audit.
// GET /proposals/{proposalId}/votes
func (a *API) listVotes(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := urlParamUUID(w, r, ProposalURLParam)
	if !ok {
		return
	}
	subs, err := a.voting.Submissions(r.Context(), proposalID)
	if err != nil {
		fromDomainError(err).Write(w)
		return
	}
	httpWriteJSON(w, subs)
}
