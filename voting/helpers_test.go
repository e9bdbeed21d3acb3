package voting

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/types"
)

var (
	ownerPrincipal = Principal{WalletAddress: "0xowner", Role: types.RolePlatformOwner}
	adminPrincipal = Principal{WalletAddress: "0xadmin", Role: types.RoleProjectAdmin}
	userPrincipal  = Principal{WalletAddress: "0xuser", Role: types.RoleUser}
)

// newTestService builds a voting service on a fresh sqlite database with a
// controllable clock, plus a project with the given census size.
func newTestService(t *testing.T, censusSize uint64) (*Service, *types.Project) {
	c := qt.New(t)
	store, err := storage.New(filepath.Join(t.TempDir(), "db.sqlite"))
	c.Assert(err, qt.IsNil)
	t.Cleanup(func() { _ = store.Close() })

	svc := New(store, KeccakVerifier{})
	project, err := svc.CreateProject(context.Background(), adminPrincipal, CreateProjectParams{
		Owner:        "0xadmin",
		TokenAddress: "0xtoken",
		CensusRoot:   types.HexBytes{0x01, 0x02},
		CensusSize:   censusSize,
		Config:       json.RawMessage(`{"network":"test"}`),
	})
	c.Assert(err, qt.IsNil)
	return svc, project
}

// openProposal creates a proposal whose voting window is currently open.
func openProposal(t *testing.T, svc *Service, project *types.Project, quorum float64) *types.Proposal {
	c := qt.New(t)
	now := time.Now()
	proposal, err := svc.CreateProposal(context.Background(), adminPrincipal, CreateProposalParams{
		ProjectID: project.ID,
		Title:     "upgrade treasury",
		Choices:   json.RawMessage(`["A","B"]`),
		Model:     types.TallyModelSingleChoice,
		Quorum:    quorum,
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
	})
	c.Assert(err, qt.IsNil)
	return proposal
}
