package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/warrenchain/pkg/types"
)

type fakeStore struct {
	balances map[types.Address]types.Uint256
}

func (f *fakeStore) BalanceGet(addr types.Address) (types.Uint256, error) {
	if bal, ok := f.balances[addr]; ok {
		return bal, nil
	}
	return types.ZeroUint256(), nil
}

func addr(id byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = id
	}
	return a
}

func u(v uint64) types.Uint256 { return types.Uint256FromUint64(v) }

func tx(from, to types.Address, amount uint64) types.Transaction {
	return types.NewTransaction(from, to, u(amount), nil)
}

func TestProcessTxMovesBalanceOnSuccess(t *testing.T) {
	a1, a2 := addr(1), addr(2)
	store := &fakeStore{balances: map[types.Address]types.Uint256{a1: u(100), a2: u(50)}}

	pool, err := FromTxPool(store, []types.Transaction{tx(a1, a2, 10)})
	require.NoError(t, err)

	pool.ProcessTx([]types.Transaction{tx(a1, a2, 10)})

	assert.True(t, pool.Tokens()[a1].Equal(u(90)))
	assert.True(t, pool.Tokens()[a2].Equal(u(60)))
}

func TestProcessTxSkipsWhenInsufficientBalance(t *testing.T) {
	a1, a2 := addr(1), addr(2)
	store := &fakeStore{balances: map[types.Address]types.Uint256{a1: u(100), a2: u(50)}}

	txs := []types.Transaction{tx(a1, a2, 200)}
	pool, err := FromTxPool(store, txs)
	require.NoError(t, err)

	pool.ProcessTx(txs)

	assert.True(t, pool.Tokens()[a1].Equal(u(100)))
	assert.True(t, pool.Tokens()[a2].Equal(u(50)))
}

func TestProcessTxSkipsLaterTxDueToEarlyBalanceChange(t *testing.T) {
	a1, a2, a3 := addr(1), addr(2), addr(3)
	store := &fakeStore{balances: map[types.Address]types.Uint256{a1: u(50), a2: u(0), a3: u(0)}}

	txs := []types.Transaction{
		tx(a1, a2, 40),
		tx(a1, a3, 20),
		tx(a2, a1, 20),
	}
	pool, err := FromTxPool(store, txs)
	require.NoError(t, err)

	pool.ProcessTx(txs)

	assert.True(t, pool.Tokens()[a1].Equal(u(30)))
	assert.True(t, pool.Tokens()[a2].Equal(u(20)))
	assert.True(t, pool.Tokens()[a3].Equal(u(0)))
}

func TestProcessTxReinvocationIsNoOp(t *testing.T) {
	a1, a2 := addr(1), addr(2)
	store := &fakeStore{balances: map[types.Address]types.Uint256{a1: u(100), a2: u(0)}}

	txs := []types.Transaction{tx(a1, a2, 10)}
	pool, err := FromTxPool(store, txs)
	require.NoError(t, err)

	pool.ProcessTx(txs)
	firstA1 := pool.Tokens()[a1]

	pool.ProcessTx([]types.Transaction{tx(a1, a2, 10)})
	assert.True(t, pool.Tokens()[a1].Equal(firstA1))
}

func TestDeltasCoverEveryLoadedAddress(t *testing.T) {
	a1, a2 := addr(1), addr(2)
	store := &fakeStore{balances: map[types.Address]types.Uint256{a1: u(10), a2: u(5)}}

	txs := []types.Transaction{tx(a1, a2, 3)}
	pool, err := FromTxPool(store, txs)
	require.NoError(t, err)
	pool.ProcessTx(txs)

	deltas := pool.Deltas()
	assert.Len(t, deltas, 2)
}
