package service

import (
	"context"
	"testing"

	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantAndRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "secret")
	bob := env.registerUser(t, "bob", "secret")

	wallet, err := env.walletSvc.Create(ctx, alice, ports.CreateWalletRequest{Name: "shared"})
	require.NoError(t, err)

	granted, err := env.accessSvc.Grant(ctx, wallet.ID, bob.ID, env.reload(t, alice.ID))
	require.NoError(t, err)
	require.Len(t, granted.Access, 2)

	// Membership symmetry: wallet.access and the member's cache agree.
	assertMembershipSymmetry(t, env, wallet.ID)

	revoked, err := env.accessSvc.Revoke(ctx, wallet.ID, bob.ID, env.reload(t, alice.ID))
	require.NoError(t, err)
	require.Len(t, revoked.Access, 1)
	assert.Equal(t, alice.ID, revoked.Access[0].ID)
	assert.Empty(t, env.reload(t, bob.ID).Wallets)
	assertMembershipSymmetry(t, env, wallet.ID)
}

func TestGrantErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "secret")
	bob := env.registerUser(t, "bob", "secret")
	eve := env.registerUser(t, "eve", "secret")

	wallet, err := env.walletSvc.Create(ctx, alice, ports.CreateWalletRequest{Name: "w"})
	require.NoError(t, err)

	_, err = env.accessSvc.Grant(ctx, wallet.ID, bob.ID, nil)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.accessSvc.Grant(ctx, "missing", bob.ID, alice)
	assert.True(t, apperror.IsNotFound(err))

	// A non-member cannot grant, even to themselves.
	_, err = env.accessSvc.Grant(ctx, wallet.ID, eve.ID, eve)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.accessSvc.Grant(ctx, wallet.ID, "missing", alice)
	assert.True(t, apperror.IsNotFound(err))

	// Granting a current member again is a conflict.
	_, err = env.accessSvc.Grant(ctx, wallet.ID, alice.ID, alice)
	assert.True(t, apperror.IsConflict(err))
}

func TestRevokeLastMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "secret")
	bob := env.registerUser(t, "bob", "secret")

	wallet, err := env.walletSvc.Create(ctx, alice, ports.CreateWalletRequest{Name: "w"})
	require.NoError(t, err)
	_, err = env.accessSvc.Grant(ctx, wallet.ID, bob.ID, env.reload(t, alice.ID))
	require.NoError(t, err)

	// Bob may remove Alice, the creator, leaving himself sole member.
	_, err = env.accessSvc.Revoke(ctx, wallet.ID, alice.ID, env.reload(t, bob.ID))
	require.NoError(t, err)

	// Removing the final member is refused and nothing changes.
	_, err = env.accessSvc.Revoke(ctx, wallet.ID, bob.ID, env.reload(t, bob.ID))
	assert.True(t, apperror.IsInvariant(err))

	got, err := env.walletSvc.Get(ctx, wallet.ID)
	require.NoError(t, err)
	require.Len(t, got.Access, 1)
	assert.Equal(t, bob.ID, got.Access[0].ID)
	assertMembershipSymmetry(t, env, wallet.ID)
}

func TestRevokeNonMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "secret")
	bob := env.registerUser(t, "bob", "secret")

	wallet, err := env.walletSvc.Create(ctx, alice, ports.CreateWalletRequest{Name: "w"})
	require.NoError(t, err)

	_, err = env.accessSvc.Revoke(ctx, wallet.ID, bob.ID, env.reload(t, alice.ID))
	assert.True(t, apperror.IsValidation(err))
}

// assertMembershipSymmetry checks both directions of the denormalized
// membership: every member's cache holds the wallet, and no other user's
// cache does.
func assertMembershipSymmetry(t *testing.T, env *testEnv, walletID string) {
	t.Helper()
	ctx := context.Background()

	wallet, err := env.walletSvc.Get(ctx, walletID)
	require.NoError(t, err)

	members := make(map[string]bool, len(wallet.Access))
	for _, m := range wallet.Access {
		members[m.ID] = true
		user := env.reload(t, m.ID)
		assert.True(t, user.HasWallet(walletID), "member %s missing cache entry", m.ID)
	}

	page, err := env.userSvc.List(ctx, "", "", 100)
	require.NoError(t, err)
	for _, summary := range page.Users {
		if members[summary.ID] {
			continue
		}
		user := env.reload(t, summary.ID)
		assert.False(t, user.HasWallet(walletID), "non-member %s holds cache entry", summary.ID)
	}
}
