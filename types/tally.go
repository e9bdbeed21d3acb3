package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Tally is the finalized aggregation of a proposal's verified submissions.
// At most one exists per proposal; it is created in the same transaction
// that moves the proposal to the tallied state, and is immutable after.
type Tally struct {
	ID         uuid.UUID `json:"id"         gorm:"type:text;primaryKey"`
	ProposalID uuid.UUID `json:"proposalId" gorm:"type:text;uniqueIndex;not null"`
	// AggregateHash is a deterministic hash over the verified submission
	// set, so a re-tally from the same data is verifiably identical.
	AggregateHash HexBytes        `json:"aggregateHash"`
	Results       json.RawMessage `json:"results" gorm:"type:text"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (Tally) TableName() string {
	return "tallies"
}
