package voting

import (
	"encoding/json"
	"fmt"

	"github.com/zkgov/ballotbox/types"
)

// TallyModel reduces a proposal's verified submissions into a results
// payload. The model tag on the proposal selects the implementation, so new
// voting rules plug in without touching the tally engine.
type TallyModel interface {
	Tag() string
	Aggregate(proposal *types.Proposal, subs []*types.Submission) (json.RawMessage, error)
}

var tallyModels = map[string]TallyModel{}

// RegisterModel makes a tally model available under its tag. Called from
// init in this package; external packages can register additional models
// before the service starts handling requests.
func RegisterModel(m TallyModel) {
	tallyModels[m.Tag()] = m
}

// ModelFor returns the tally model registered under tag.
func ModelFor(tag string) (TallyModel, bool) {
	m, ok := tallyModels[tag]
	return m, ok
}

func init() {
	RegisterModel(SingleChoiceModel{})
	RegisterModel(ApprovalModel{})
}

// SingleChoiceModel counts one vote per ballot, grouped by choice
// commitment. Result keys are the hex form of the commitment.
type SingleChoiceModel struct{}

func (SingleChoiceModel) Tag() string { return types.TallyModelSingleChoice }

func (SingleChoiceModel) Aggregate(_ *types.Proposal, subs []*types.Submission) (json.RawMessage, error) {
	counts := map[string]uint64{}
	for _, sub := range subs {
		counts[sub.Commitment.String()]++
	}
	return json.Marshal(counts)
}

// ApprovalModel lets one ballot approve several choices: each byte of the
// commitment is a choice index, counted once per ballot. Result keys are
// decimal choice indexes.
type ApprovalModel struct{}

func (ApprovalModel) Tag() string { return types.TallyModelApproval }

func (ApprovalModel) Aggregate(_ *types.Proposal, subs []*types.Submission) (json.RawMessage, error) {
	counts := map[string]uint64{}
	for _, sub := range subs {
		seen := map[byte]bool{}
		for _, idx := range sub.Commitment {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			counts[fmt.Sprintf("%d", idx)]++
		}
	}
	return json.Marshal(counts)
}
