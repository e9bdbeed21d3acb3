package tests

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/zkgov/ballotbox/api"
	"github.com/zkgov/ballotbox/api/client"
	"github.com/zkgov/ballotbox/storage"
	"github.com/zkgov/ballotbox/types"
	"github.com/zkgov/ballotbox/voting"
)

const (
	testJWTSecret = "integration-test-secret"
	ownerWallet   = "0x0000000000000000000000000000000000000001"
	adminWallet   = "0x0000000000000000000000000000000000000002"
	userWallet    = "0x0000000000000000000000000000000000000003"
)

// NewTestServer boots the full stack (sqlite storage, voting core, HTTP
// API) on an httptest listener, with a platform owner, a project admin and
// a plain user already registered.
func NewTestServer(t *testing.T) (*httptest.Server, *voting.Service) {
	c := qt.New(t)
	store, err := storage.New(filepath.Join(t.TempDir(), "db.sqlite"))
	c.Assert(err, qt.IsNil)
	t.Cleanup(func() { _ = store.Close() })

	svc := voting.New(store, voting.KeccakVerifier{})

	ctx := context.Background()
	for wallet, role := range map[string]string{
		ownerWallet: types.RolePlatformOwner,
		adminWallet: types.RoleProjectAdmin,
		userWallet:  types.RoleUser,
	} {
		err := store.CreateUser(ctx, &types.User{
			WalletAddress: wallet,
			Role:          role,
			CreatedAt:     time.Now(),
		})
		c.Assert(err, qt.IsNil)
	}

	a, err := api.NewRouter(&api.APIConfig{
		Voting:    svc,
		JWTSecret: testJWTSecret,
	})
	c.Assert(err, qt.IsNil)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return srv, svc
}

// NewTestClient connects an API client to the test server and logs in with
// the given wallet. An empty wallet returns an unauthenticated client.
func NewTestClient(t *testing.T, srv *httptest.Server, wallet string) *client.HTTPclient {
	c := qt.New(t)
	cli, err := client.New(srv.URL)
	c.Assert(err, qt.IsNil)
	if wallet != "" {
		_, err := cli.Login(wallet)
		c.Assert(err, qt.IsNil)
	}
	return cli
}
