package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/warrenchain/pkg/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.db")
	m, err := CreateOrOpen(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func testAddr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestBalanceGetDefaultsToZero(t *testing.T) {
	m := newTestManager(t)

	bal, err := m.BalanceGet(testAddr(1))
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestBalanceInsertAndGet(t *testing.T) {
	m := newTestManager(t)
	addr := testAddr(2)

	require.NoError(t, m.BalanceInsert(addr, types.Uint256FromUint64(500)))

	bal, err := m.BalanceGet(addr)
	require.NoError(t, err)
	assert.True(t, bal.Equal(types.Uint256FromUint64(500)))
}

func TestBalanceUpdateOnMissingKeyStartsFromZero(t *testing.T) {
	m := newTestManager(t)
	addr := testAddr(3)

	got, err := m.BalanceUpdate(addr, func(cur types.Uint256) types.Uint256 {
		return cur.SaturatingAdd(types.Uint256FromUint64(10))
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(types.Uint256FromUint64(10)))

	got2, err := m.BalanceUpdate(addr, func(cur types.Uint256) types.Uint256 {
		return cur.SaturatingAdd(types.Uint256FromUint64(10))
	})
	require.NoError(t, err)
	assert.True(t, got2.Equal(types.Uint256FromUint64(20)))
}

func TestBalanceMultiInsert(t *testing.T) {
	m := newTestManager(t)

	deltas := []types.BalanceDelta{
		{Addr: testAddr(1), Amount: types.Uint256FromUint64(100)},
		{Addr: testAddr(2), Amount: types.Uint256FromUint64(200)},
	}
	require.NoError(t, m.BalanceMultiInsert(deltas))

	for _, d := range deltas {
		bal, err := m.BalanceGet(d.Addr)
		require.NoError(t, err)
		assert.True(t, bal.Equal(d.Amount))
	}
}

func TestNonceIncrement(t *testing.T) {
	m := newTestManager(t)
	addr := testAddr(4)

	n, err := m.NonceGet(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)

	n1, err := m.NonceIncrement(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n1)

	n2, err := m.NonceIncrement(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n2)
}

func TestBlockInsertAndGet(t *testing.T) {
	m := newTestManager(t)

	header := types.BlockHeader{BlockID: 1, PrevBlock: types.ZeroHash}
	b := types.Block{Header: header, BlockHash: types.HashBytes([]byte("x"))}

	require.NoError(t, m.BlockInsert(b))

	got, err := m.BlockGet(1)
	require.NoError(t, err)
	assert.Equal(t, b.BlockHash, got.BlockHash)
	assert.Equal(t, b.Header, got.Header)
}

func TestBlockGetMissingReturnsZeroValue(t *testing.T) {
	m := newTestManager(t)

	got, err := m.BlockGet(99)
	require.NoError(t, err)
	assert.Equal(t, types.Block{}, got)
}

func TestBlockScanOrdersByHeight(t *testing.T) {
	m := newTestManager(t)

	for _, id := range []uint64{3, 1, 2} {
		require.NoError(t, m.BlockInsert(types.Block{Header: types.BlockHeader{BlockID: id}}))
	}

	var seen []uint64
	err := m.BlockScan(func(height uint64, _ types.Block) error {
		seen = append(seen, height)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, seen)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.db")

	m1, err := CreateOrOpen(path)
	require.NoError(t, err)
	require.NoError(t, m1.BalanceInsert(testAddr(7), types.Uint256FromUint64(42)))
	require.NoError(t, m1.Close())

	m2, err := CreateOrOpen(path)
	require.NoError(t, err)
	defer m2.Close()

	bal, err := m2.BalanceGet(testAddr(7))
	require.NoError(t, err)
	assert.True(t, bal.Equal(types.Uint256FromUint64(42)))
}
