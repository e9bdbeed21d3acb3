package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/zkgov/ballotbox/types"
)

func newTestStorage(t *testing.T) *Storage {
	c := qt.New(t)
	store, err := New(filepath.Join(t.TempDir(), "db.sqlite"))
	c.Assert(err, qt.IsNil)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testProposal(projectID uuid.UUID) *types.Proposal {
	now := time.Now()
	return &types.Proposal{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Title:         "test proposal",
		Model:         types.TallyModelSingleChoice,
		Quorum:        0.5,
		EligibleVotes: 10,
		StartTime:     now.Add(-time.Hour),
		EndTime:       now.Add(time.Hour),
		State:         types.ProposalStateDraft,
		CreatedAt:     now,
	}
}

func TestProposalRoundtrip(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.Proposal(ctx, uuid.New())
	c.Assert(err, qt.Equals, ErrNotFound)

	p := testProposal(uuid.New())
	c.Assert(store.CreateProposal(ctx, p), qt.IsNil)

	got, err := store.Proposal(ctx, p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Title, qt.Equals, p.Title)
	c.Assert(got.State, qt.Equals, types.ProposalStateDraft)
	c.Assert(got.EligibleVotes, qt.Equals, uint64(10))
}

func TestSubmissionUniqueIndex(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	store := newTestStorage(t)

	p := testProposal(uuid.New())
	c.Assert(store.CreateProposal(ctx, p), qt.IsNil)

	nullifier := types.HexBytes("nullifier-1")
	sub := &types.Submission{
		ID:         uuid.New(),
		ProposalID: p.ID,
		Nullifier:  nullifier,
		Commitment: types.HexBytes("A"),
		CreatedAt:  time.Now(),
	}
	c.Assert(store.CreateSubmission(ctx, sub), qt.IsNil)

	// Same (proposal, nullifier) violates the unique index.
	dup := &types.Submission{
		ID:         uuid.New(),
		ProposalID: p.ID,
		Nullifier:  nullifier,
		Commitment: types.HexBytes("B"),
		CreatedAt:  time.Now(),
	}
	err := store.CreateSubmission(ctx, dup)
	c.Assert(errors.Is(err, ErrDuplicateKey), qt.IsTrue)

	// Same nullifier on another proposal is allowed.
	p2 := testProposal(uuid.New())
	c.Assert(store.CreateProposal(ctx, p2), qt.IsNil)
	other := &types.Submission{
		ID:         uuid.New(),
		ProposalID: p2.ID,
		Nullifier:  nullifier,
		Commitment: types.HexBytes("A"),
		CreatedAt:  time.Now(),
	}
	c.Assert(store.CreateSubmission(ctx, other), qt.IsNil)
}

func TestTallyUniquePerProposal(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	store := newTestStorage(t)

	p := testProposal(uuid.New())
	c.Assert(store.CreateProposal(ctx, p), qt.IsNil)

	tally := &types.Tally{
		ID:         uuid.New(),
		ProposalID: p.ID,
		Results:    []byte(`{}`),
		CreatedAt:  time.Now(),
	}
	c.Assert(store.CreateTally(ctx, tally), qt.IsNil)

	second := &types.Tally{
		ID:         uuid.New(),
		ProposalID: p.ID,
		Results:    []byte(`{}`),
		CreatedAt:  time.Now(),
	}
	err := store.CreateTally(ctx, second)
	c.Assert(errors.Is(err, ErrDuplicateKey), qt.IsTrue)
}

func TestTransactionRollback(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	store := newTestStorage(t)

	p := testProposal(uuid.New())
	errBoom := errors.New("boom")
	err := store.Transaction(ctx, func(tx *Storage) error {
		if err := tx.CreateProposal(ctx, p); err != nil {
			return err
		}
		return errBoom
	})
	c.Assert(errors.Is(err, errBoom), qt.IsTrue)

	// The failed transaction left nothing behind.
	_, err = store.Proposal(ctx, p.ID)
	c.Assert(err, qt.Equals, ErrNotFound)
}

func TestVerifiedSubmissionOrder(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	store := newTestStorage(t)

	p := testProposal(uuid.New())
	c.Assert(store.CreateProposal(ctx, p), qt.IsNil)

	// Insert out of nullifier order; the verified listing is canonical.
	for _, n := range []string{"cc", "aa", "bb"} {
		now := time.Now()
		sub := &types.Submission{
			ID:         uuid.New(),
			ProposalID: p.ID,
			Nullifier:  types.HexBytes(n),
			Commitment: types.HexBytes("A"),
			Verified:   true,
			VerifiedAt: &now,
			CreatedAt:  now,
		}
		c.Assert(store.CreateSubmission(ctx, sub), qt.IsNil)
	}
	// And one unverified row that must not show up.
	c.Assert(store.CreateSubmission(ctx, &types.Submission{
		ID:         uuid.New(),
		ProposalID: p.ID,
		Nullifier:  types.HexBytes("dd"),
		Commitment: types.HexBytes("B"),
		CreatedAt:  time.Now(),
	}), qt.IsNil)

	subs, err := store.ListVerifiedSubmissions(ctx, p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(subs, qt.HasLen, 3)
	for i, want := range []string{"aa", "bb", "cc"} {
		c.Assert(string(subs[i].Nullifier), qt.Equals, want)
	}

	all, err := store.ListSubmissions(ctx, p.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(all, qt.HasLen, 4)
}

func TestUserRoundtrip(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	store := newTestStorage(t)

	u := &types.User{WalletAddress: "0xabc", Role: types.RoleUser, CreatedAt: time.Now()}
	c.Assert(store.CreateUser(ctx, u), qt.IsNil)

	err := store.CreateUser(ctx, &types.User{WalletAddress: "0xabc", Role: types.RoleUser})
	c.Assert(errors.Is(err, ErrDuplicateKey), qt.IsTrue)

	c.Assert(store.UpdateUserRole(ctx, "0xabc", types.RolePlatformOwner), qt.IsNil)
	got, err := store.User(ctx, "0xabc")
	c.Assert(err, qt.IsNil)
	c.Assert(got.Role, qt.Equals, types.RolePlatformOwner)

	c.Assert(store.UpdateUserRole(ctx, "0xmissing", types.RoleUser), qt.Equals, ErrNotFound)
}
