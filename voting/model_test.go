package voting

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/zkgov/ballotbox/types"
)

func subsWithCommitments(commitments ...string) []*types.Submission {
	subs := make([]*types.Submission, len(commitments))
	for i, commitment := range commitments {
		subs[i] = &types.Submission{
			Commitment: types.HexBytes(commitment),
			Verified:   true,
		}
	}
	return subs
}

func TestSingleChoiceModel(t *testing.T) {
	c := qt.New(t)
	raw, err := SingleChoiceModel{}.Aggregate(nil, subsWithCommitments("A", "B", "A", "A"))
	c.Assert(err, qt.IsNil)

	var results map[string]uint64
	c.Assert(json.Unmarshal(raw, &results), qt.IsNil)
	c.Assert(results, qt.DeepEquals, map[string]uint64{
		types.HexBytes("A").String(): 3,
		types.HexBytes("B").String(): 1,
	})
}

func TestApprovalModel(t *testing.T) {
	c := qt.New(t)
	// Ballot 1 approves choices 0 and 2 (with a duplicate that must count
	// once); ballot 2 approves choice 2 only.
	subs := []*types.Submission{
		{Commitment: types.HexBytes{0, 2, 2}, Verified: true},
		{Commitment: types.HexBytes{2}, Verified: true},
	}
	raw, err := ApprovalModel{}.Aggregate(nil, subs)
	c.Assert(err, qt.IsNil)

	var results map[string]uint64
	c.Assert(json.Unmarshal(raw, &results), qt.IsNil)
	c.Assert(results, qt.DeepEquals, map[string]uint64{"0": 1, "2": 2})
}

func TestModelRegistry(t *testing.T) {
	c := qt.New(t)
	for _, tag := range []string{types.TallyModelSingleChoice, types.TallyModelApproval} {
		m, ok := ModelFor(tag)
		c.Assert(ok, qt.IsTrue)
		c.Assert(m.Tag(), qt.Equals, tag)
	}
	_, ok := ModelFor("ranked_choice")
	c.Assert(ok, qt.IsFalse)
}
