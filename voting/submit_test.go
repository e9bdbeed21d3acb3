package voting

import (
	"context"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
	"github.com/zkgov/ballotbox/util"
)

func TestSubmitBallot(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, project := newTestService(t, 10)
	proposal := openProposal(t, svc, project, 0.1)

	// A valid proof is persisted as verified, with a timestamp.
	sub, err := svc.SubmitBallot(ctx, proposal.ID,
		SealProof([]byte("credential-1")),
		types.HexBytes("A"),
		util.RandomBytes(32),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(sub.Verified, qt.IsTrue)
	c.Assert(sub.VerifiedAt, qt.Not(qt.IsNil))

	// An invalid proof is still persisted, unverified and without a
	// timestamp; it is not an error.
	sub2, err := svc.SubmitBallot(ctx, proposal.ID,
		types.HexBytes("garbage"),
		types.HexBytes("B"),
		util.RandomBytes(32),
	)
	c.Assert(err, qt.IsNil)
	c.Assert(sub2.Verified, qt.IsFalse)
	c.Assert(sub2.VerifiedAt, qt.IsNil)

	subs, err := svc.Submissions(ctx, proposal.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, 2)

	// The first accepted submission materialized draft -> open.
	p, err := svc.Proposal(ctx, proposal.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(p.State, qt.Equals, types.ProposalStateOpen)
}

func TestSubmitBallotValidation(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, project := newTestService(t, 10)
	proposal := openProposal(t, svc, project, 0.1)

	_, err := svc.SubmitBallot(ctx, proposal.ID, SealProof([]byte("x")), types.HexBytes("A"), nil)
	c.Assert(err, qt.ErrorIs, ErrValidation)

	_, err = svc.SubmitBallot(ctx, proposal.ID, SealProof([]byte("x")), nil, util.RandomBytes(32))
	c.Assert(err, qt.ErrorIs, ErrValidation)

	_, err = svc.SubmitBallot(ctx, uuid.New(), SealProof([]byte("x")), types.HexBytes("A"), util.RandomBytes(32))
	c.Assert(err, qt.ErrorIs, ErrNotFound)
}

func TestSubmitDuplicateNullifier(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, project := newTestService(t, 10)
	proposal := openProposal(t, svc, project, 0.1)

	nullifier := types.HexBytes(util.RandomBytes(32))
	_, err := svc.SubmitBallot(ctx, proposal.ID, SealProof([]byte("c1")), types.HexBytes("A"), nullifier)
	c.Assert(err, qt.IsNil)

	// Same nullifier again, even with a different choice, is a double vote.
	_, err = svc.SubmitBallot(ctx, proposal.ID, SealProof([]byte("c1")), types.HexBytes("B"), nullifier)
	c.Assert(err, qt.ErrorIs, ErrDuplicateNullifier)

	// Exactly one record with that nullifier is persisted.
	subs, err := svc.Submissions(ctx, proposal.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, 1)
	c.Assert(subs[0].Nullifier.String(), qt.Equals, nullifier.String())

	// The same nullifier on a different proposal is fine: nullifiers are
	// scoped per proposal.
	other := openProposal(t, svc, project, 0.1)
	_, err = svc.SubmitBallot(ctx, other.ID, SealProof([]byte("c1")), types.HexBytes("A"), nullifier)
	c.Assert(err, qt.IsNil)
}

func TestSubmitConcurrentDuplicate(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, project := newTestService(t, 100)
	proposal := openProposal(t, svc, project, 0)

	nullifier := types.HexBytes(util.RandomBytes(32))
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitBallot(ctx, proposal.ID,
				SealProof([]byte("shared credential")),
				types.HexBytes("A"),
				nullifier,
			)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	c.Assert(successes, qt.Equals, 1)

	subs, err := svc.Submissions(ctx, proposal.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, 1)
}

func TestSubmitOutsideWindow(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, project := newTestService(t, 10)

	base := time.Now()
	proposal, err := svc.CreateProposal(ctx, adminPrincipal, CreateProposalParams{
		ProjectID: project.ID,
		Title:     "windowed",
		Model:     types.TallyModelSingleChoice,
		Quorum:    0.1,
		StartTime: base.Add(time.Hour),
		EndTime:   base.Add(2 * time.Hour),
	})
	c.Assert(err, qt.IsNil)

	submit := func() error {
		_, err := svc.SubmitBallot(ctx, proposal.ID,
			SealProof([]byte("c")), types.HexBytes("A"), util.RandomBytes(32))
		return err
	}

	// Before the window opens.
	svc.SetClock(func() time.Time { return base })
	c.Assert(submit(), qt.ErrorIs, ErrVotingClosed)

	// Exactly at start: open (window is [start, end)).
	svc.SetClock(func() time.Time { return base.Add(time.Hour) })
	c.Assert(submit(), qt.IsNil)

	// Exactly at end: closed.
	svc.SetClock(func() time.Time { return base.Add(2 * time.Hour) })
	c.Assert(submit(), qt.ErrorIs, ErrVotingClosed)
}

func TestSubmitToRevokedProposal(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, project := newTestService(t, 10)
	proposal := openProposal(t, svc, project, 0.1)

	_, err := svc.RevokeProposal(ctx, ownerPrincipal, proposal.ID)
	c.Assert(err, qt.IsNil)

	// Rejection is VotingClosed no matter how valid the proof is.
	_, err = svc.SubmitBallot(ctx, proposal.ID,
		SealProof([]byte("perfectly valid")), types.HexBytes("A"), util.RandomBytes(32))
	c.Assert(err, qt.ErrorIs, ErrVotingClosed)
}
