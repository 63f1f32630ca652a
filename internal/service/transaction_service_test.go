package service

import (
	"context"
	"encoding/json"
	"testing"

	"shared-wallet-service/internal/core/domain"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walletWithOwner is the common fixture: a registered user owning one wallet.
func walletWithOwner(t *testing.T, env *testEnv) (*domain.Wallet, *domain.User) {
	t.Helper()
	owner := env.registerUser(t, "alice", "secret")
	wallet, err := env.walletSvc.Create(context.Background(), owner, ports.CreateWalletRequest{Name: "w"})
	require.NoError(t, err)
	return wallet, owner
}

func (e *testEnv) walletBalance(t *testing.T, walletID string) float64 {
	t.Helper()
	wallet, err := e.walletSvc.Get(context.Background(), walletID)
	require.NoError(t, err)
	return wallet.Balance
}

func TestBalanceFollowsTransactionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wallet, owner := walletWithOwner(t, env)

	tx, err := env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{
		Name:   "deposit",
		Amount: 50.0,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, 50.0, tx.Amount)
	assert.Equal(t, 50.0, env.walletBalance(t, wallet.ID))

	updated, err := env.txSvc.Update(ctx, tx.ID, ports.TransactionPatch{Amount: 30.0}, owner)
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Amount)
	assert.Equal(t, 30.0, env.walletBalance(t, wallet.ID))

	_, err = env.txSvc.Delete(ctx, tx.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 0.0, env.walletBalance(t, wallet.ID))

	_, err = env.txSvc.Get(ctx, tx.ID, owner)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBalanceSumsAllTransactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wallet, owner := walletWithOwner(t, env)

	amounts := []float64{10, -4.5, 100, 0, -3}
	var want float64
	for _, a := range amounts {
		_, err := env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{
			Name:   "entry",
			Amount: a,
		}, owner)
		require.NoError(t, err)
		want += a
	}
	assert.InDelta(t, want, env.walletBalance(t, wallet.ID), 1e-9)
}

func TestCreateTransactionCoercesAmount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wallet, owner := walletWithOwner(t, env)

	cases := []struct {
		name   string
		amount any
		want   float64
	}{
		{"float", 12.5, 12.5},
		{"numeric string", "7.25", 7.25},
		{"json number", json.Number("3"), 3},
		{"garbage string", "twelve", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"object", map[string]any{"v": 1}, 0},
	}
	var want float64
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{
				Name:   tc.name,
				Amount: tc.amount,
			}, owner)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tx.Amount)
			want += tc.want
		})
	}
	assert.InDelta(t, want, env.walletBalance(t, wallet.ID), 1e-9)
}

func TestUpdateTransactionPartialPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wallet, owner := walletWithOwner(t, env)

	tx, err := env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{
		Name:   "original",
		Amount: 20.0,
		Extra:  json.RawMessage(`{"tag":"a"}`),
	}, owner)
	require.NoError(t, err)

	// Name-only patch: amount and balance untouched.
	name := "renamed"
	updated, err := env.txSvc.Update(ctx, tx.ID, ports.TransactionPatch{Name: &name}, owner)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 20.0, updated.Amount)
	assert.Equal(t, `{"tag":"a"}`, string(updated.Extra))
	assert.Equal(t, 20.0, env.walletBalance(t, wallet.ID))

	// Amount patch with an unparseable value coerces to zero and reverses
	// the prior contribution.
	updated, err = env.txSvc.Update(ctx, tx.ID, ports.TransactionPatch{Amount: "not a number"}, owner)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.Amount)
	assert.Equal(t, 0.0, env.walletBalance(t, wallet.ID))
}

func TestTransactionAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wallet, owner := walletWithOwner(t, env)
	outsider := env.registerUser(t, "bob", "secret")

	tx, err := env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{
		Name:   "entry",
		Amount: 1.0,
	}, owner)
	require.NoError(t, err)

	_, err = env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{Name: "x"}, nil)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{Name: "x"}, outsider)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.txSvc.Get(ctx, tx.ID, outsider)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.txSvc.Update(ctx, tx.ID, ports.TransactionPatch{Amount: 2.0}, outsider)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.txSvc.Delete(ctx, tx.ID, outsider)
	assert.True(t, apperror.IsAuth(err))

	_, err = env.txSvc.Get(ctx, "missing_tx", owner)
	assert.True(t, apperror.IsNotFound(err))

	// The failed attempts changed nothing.
	assert.Equal(t, 1.0, env.walletBalance(t, wallet.ID))
}

func TestListTransactionsPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	wallet, owner := walletWithOwner(t, env)

	for i := 0; i < 12; i++ {
		_, err := env.txSvc.Create(ctx, wallet.ID, ports.CreateTransactionRequest{
			Name:   "entry",
			Amount: 1.0,
		}, owner)
		require.NoError(t, err)
	}

	// Default page size applies when limit is zero.
	page, err := env.txSvc.List(ctx, wallet.ID, "", 0, owner)
	require.NoError(t, err)
	assert.Len(t, page.Transactions, defaultTransactionPageSize)
	assert.True(t, page.HasMore)

	var seen int
	cursor := ""
	for {
		page, err := env.txSvc.List(ctx, wallet.ID, cursor, 5, owner)
		require.NoError(t, err)
		seen += len(page.Transactions)
		for _, tx := range page.Transactions {
			assert.Equal(t, wallet.ID, tx.WalletID)
		}
		if !page.HasMore {
			break
		}
		cursor = page.Cursor
	}
	assert.Equal(t, 12, seen)

	outsider := env.registerUser(t, "bob", "secret")
	_, err = env.txSvc.List(ctx, wallet.ID, "", 5, outsider)
	assert.True(t, apperror.IsAuth(err))
}

func TestListByCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.registerUser(t, "alice", "secret")
	bob := env.registerUser(t, "bob", "secret")

	aw, err := env.walletSvc.Create(ctx, alice, ports.CreateWalletRequest{Name: "a"})
	require.NoError(t, err)
	bw, err := env.walletSvc.Create(ctx, bob, ports.CreateWalletRequest{Name: "b"})
	require.NoError(t, err)

	// Bob posts into Alice's wallet too, once granted.
	_, err = env.accessSvc.Grant(ctx, aw.ID, bob.ID, env.reload(t, alice.ID))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := env.txSvc.Create(ctx, aw.ID, ports.CreateTransactionRequest{Name: "by alice", Amount: 1.0}, env.reload(t, alice.ID))
		require.NoError(t, err)
	}
	_, err = env.txSvc.Create(ctx, aw.ID, ports.CreateTransactionRequest{Name: "by bob", Amount: 1.0}, env.reload(t, bob.ID))
	require.NoError(t, err)
	_, err = env.txSvc.Create(ctx, bw.ID, ports.CreateTransactionRequest{Name: "by bob", Amount: 1.0}, env.reload(t, bob.ID))
	require.NoError(t, err)

	mine, err := env.txSvc.ListByCreator(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, tx := range mine {
		assert.Equal(t, alice.ID, tx.CreatedBy.ID)
	}

	theirs, err := env.txSvc.ListByCreator(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, theirs, 2)

	_, err = env.txSvc.ListByCreator(ctx, nil)
	assert.True(t, apperror.IsAuth(err))
}
