package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProposalState is the lifecycle state of a proposal. Draft and Open are
// non-terminal; Closed, Revoked and Tallied accept no further submissions,
// and only Tallied may have a Tally record.
type ProposalState string

const (
	ProposalStateDraft   ProposalState = "draft"
	ProposalStateOpen    ProposalState = "open"
	ProposalStateClosed  ProposalState = "closed"
	ProposalStateRevoked ProposalState = "revoked"
	ProposalStateTallied ProposalState = "tallied"
)

// Terminal returns true if no further submissions are accepted in this state.
func (s ProposalState) Terminal() bool {
	switch s {
	case ProposalStateClosed, ProposalStateRevoked, ProposalStateTallied:
		return true
	}
	return false
}

// Tally model tags. The tag on a proposal selects which reducer turns its
// verified submissions into a results payload.
const (
	TallyModelSingleChoice = "single_choice"
	TallyModelApproval     = "approval"
)

// Proposal is a governance decision scoped to a project. Proposals are never
// deleted; they are retained for audit and mutate only through lifecycle
// transitions.
type Proposal struct {
	ID        uuid.UUID `json:"id"        gorm:"type:text;primaryKey"`
	ProjectID uuid.UUID `json:"projectId" gorm:"type:text;index;not null"`
	Title     string    `json:"title"`
	// Choices is an opaque structured payload, interpreted only by the
	// tally model selected by Model.
	Choices json.RawMessage `json:"choices" gorm:"type:text"`
	Model   string          `json:"model"`
	// Quorum is the minimum fraction of eligible votes, in [0,1].
	Quorum float64 `json:"quorum"`
	// EligibleVotes is the quorum denominator, snapshotted from the project
	// census at proposal creation. It is never recomputed live.
	EligibleVotes uint64        `json:"eligibleVotes"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	State         ProposalState `json:"state"`
	Revoked       bool          `json:"revoked"`
	Finalized     bool          `json:"finalized"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (Proposal) TableName() string {
	return "proposals"
}

func (p *Proposal) String() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}
