package types

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one ballot cast against a proposal. The (proposal, nullifier)
// pair is unique across all submissions, enforced by the storage layer; this
// is what makes double voting detectable without revealing voter identity.
//
// VerifiedAt is non-nil if and only if Verified is true: a nil timestamp
// signals "not verified", never "verified at unknown time". Submissions are
// immutable once the verification result is recorded, and are never deleted.
type Submission struct {
	ID         uuid.UUID `json:"id"         gorm:"type:text;primaryKey"`
	ProposalID uuid.UUID `json:"proposalId" gorm:"type:text;not null;uniqueIndex:idx_proposal_nullifier"`
	// Proof is the opaque eligibility proof artifact checked by the verifier.
	Proof HexBytes `json:"proof"`
	// Commitment binds the ballot to a chosen option without revealing it
	// to the storage layer; it is interpreted by the tally model.
	Commitment HexBytes `json:"commitment"`
	// Nullifier is derived deterministically from the voter's eligibility
	// credential and the proposal, so the same credential always yields the
	// same nullifier for a given proposal.
	Nullifier  HexBytes   `json:"nullifier" gorm:"not null;uniqueIndex:idx_proposal_nullifier"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (Submission) TableName() string {
	return "submissions"
}
