package chainnode

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/warrenchain/pkg/events"
	"github.com/cuemby/warrenchain/pkg/mempool"
	"github.com/cuemby/warrenchain/pkg/storage"
	"github.com/cuemby/warrenchain/pkg/types"
)

func newTestNode(t *testing.T) *NodeManager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.db")
	store, err := storage.CreateOrOpen(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mp := mempool.New(100)
	nm, err := Genesis(store, mp, 100, [types.ExtraDataLen]byte{})
	require.NoError(t, err)
	return nm
}

func addr(id byte) types.Address {
	var a types.Address
	for i := range a {
		a[i] = id
	}
	return a
}

func u(v uint64) types.Uint256 { return types.Uint256FromUint64(v) }

func mineOneBlock(t *testing.T, nm *NodeManager, extraData [types.ExtraDataLen]byte) types.Block {
	t.Helper()
	pool, txs, err := nm.ProcessExecutionTransaction()
	require.NoError(t, err)
	block := nm.CreateBlockWithProcessedTxPool(pool, txs)
	require.NoError(t, nm.MineWithBlock(block, extraData))
	got, err := nm.GetBlock(block.Header.BlockID)
	require.NoError(t, err)
	return got
}

func TestGenesisSeedsTip(t *testing.T) {
	nm := newTestNode(t)
	assert.Equal(t, uint64(1), nm.CurrentBlockID())

	genesis, err := nm.GetBlock(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), genesis.Header.BlockID)
	assert.Equal(t, types.ZeroHash, genesis.Header.PrevBlock)
	assert.Equal(t, genesis.BlockHash, nm.PrevBlockHash())
}

// S1: simple transfer.
func TestSimpleTransfer(t *testing.T) {
	nm := newTestNode(t)
	a, b := addr(1), addr(2)

	require.NoError(t, nm.Mint(a, u(1000)))
	require.NoError(t, nm.Mint(b, u(0)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(a, b, u(300), nil)))

	block := mineOneBlock(t, nm, [types.ExtraDataLen]byte{})

	balA, err := nm.GetBalance(a)
	require.NoError(t, err)
	balB, err := nm.GetBalance(b)
	require.NoError(t, err)

	assert.True(t, balA.Equal(u(700)))
	assert.True(t, balB.Equal(u(300)))
	assert.Equal(t, uint64(2), nm.CurrentBlockID())
	require.Len(t, block.Data.Tokens, 2)
}

// S2: insufficient balance is silent.
func TestInsufficientBalanceSkippedSilently(t *testing.T) {
	nm := newTestNode(t)
	a, b := addr(1), addr(2)

	require.NoError(t, nm.Mint(a, u(10)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(a, b, u(50), nil)))

	block := mineOneBlock(t, nm, [types.ExtraDataLen]byte{})
	assert.Empty(t, block.Data.Tokens)

	balA, err := nm.GetBalance(a)
	require.NoError(t, err)
	balB, err := nm.GetBalance(b)
	require.NoError(t, err)
	assert.True(t, balA.Equal(u(10)))
	assert.True(t, balB.Equal(u(0)))
}

// S3: intra-block dependency ordering.
func TestIntraBlockDependencyOrdering(t *testing.T) {
	nm := newTestNode(t)
	a, b, c := addr(1), addr(2), addr(3)

	require.NoError(t, nm.Mint(a, u(50)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(a, b, u(40), nil)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(a, c, u(20), nil)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(b, a, u(20), nil)))

	mineOneBlock(t, nm, [types.ExtraDataLen]byte{})

	balA, _ := nm.GetBalance(a)
	balB, _ := nm.GetBalance(b)
	balC, _ := nm.GetBalance(c)

	assert.True(t, balA.Equal(u(30)))
	assert.True(t, balB.Equal(u(20)))
	assert.True(t, balC.Equal(u(0)))
}

// S4: conservation across many blocks.
func TestConservationAcrossManyBlocks(t *testing.T) {
	nm := newTestNode(t)
	a, b, c := addr(1), addr(2), addr(3)
	addrs := []types.Address{a, b, c}

	require.NoError(t, nm.Mint(a, u(1_000_000)))
	require.NoError(t, nm.Mint(b, u(1_000_000)))
	require.NoError(t, nm.Mint(c, u(1_000_000)))

	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		for j := 0; j < 50; j++ {
			from := addrs[rng.Intn(len(addrs))]
			to := addrs[rng.Intn(len(addrs))]
			amount := u(uint64(rng.Intn(1000)))
			_ = nm.PushTransaction(types.NewTransaction(from, to, amount, nil))
		}
		mineOneBlock(t, nm, [types.ExtraDataLen]byte{})
	}

	var total types.Uint256 = types.ZeroUint256()
	for _, addr := range addrs {
		bal, err := nm.GetBalance(addr)
		require.NoError(t, err)
		total = total.SaturatingAdd(bal)
	}
	assert.True(t, total.Equal(u(3_000_000)))
	assert.Equal(t, uint64(21), nm.CurrentBlockID())

	var prevHash types.Hash
	for h := uint64(0); h <= 20; h++ {
		block, err := nm.GetBlock(h)
		require.NoError(t, err)
		if h > 0 {
			assert.Equal(t, prevHash, block.Header.PrevBlock)
		}
		prevHash = block.BlockHash
	}
}

// S5: mempool overflow.
func TestMempoolOverflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.db")
	store, err := storage.CreateOrOpen(path)
	require.NoError(t, err)
	defer store.Close()

	mp := mempool.New(100)
	nm, err := Genesis(store, mp, 100, [types.ExtraDataLen]byte{})
	require.NoError(t, err)

	a, b := addr(1), addr(2)
	succeeded, rejected := 0, 0
	for i := 0; i < 150; i++ {
		err := nm.PushTransaction(types.NewTransaction(a, b, u(1), nil))
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrMempoolFull)
			rejected++
		}
	}
	assert.Equal(t, 100, succeeded)
	assert.Equal(t, 50, rejected)

	mineOneBlock(t, nm, [types.ExtraDataLen]byte{})
	assert.NoError(t, nm.PushTransaction(types.NewTransaction(a, b, u(1), nil)))
}

// S6: query default.
func TestQueryDefaultBalance(t *testing.T) {
	nm := newTestNode(t)
	bal, err := nm.GetBalance(addr(99))
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestBrokerReceivesTxAndBlockEvents(t *testing.T) {
	nm := newTestNode(t)
	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()
	nm.SetBroker(broker)

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	a, b := addr(1), addr(2)
	require.NoError(t, nm.Mint(a, u(100)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(a, b, u(10), nil)))

	select {
	case ev := <-sub:
		assert.Equal(t, events.EventTxSubmitted, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tx.submitted event")
	}

	mineOneBlock(t, nm, [types.ExtraDataLen]byte{})

	select {
	case ev := <-sub:
		assert.Equal(t, events.EventBlockMined, ev.Type)
		assert.Equal(t, "1", ev.Metadata["height"])
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for block.mined event")
	}
}

func TestGetBlockMissingReturnsError(t *testing.T) {
	nm := newTestNode(t)
	_, err := nm.GetBlock(42)
	assert.Error(t, err)
	var notExist *ErrBlockNotExist
	assert.ErrorAs(t, err, &notExist)
}

func TestResumeFallsBackToGenesisOnEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.db")
	store, err := storage.CreateOrOpen(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	nm, err := Resume(store, mempool.New(100), 100, [types.ExtraDataLen]byte{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nm.CurrentBlockID())
}

func TestResumePicksUpExistingTip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.db")
	store, err := storage.CreateOrOpen(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mp := mempool.New(100)
	nm, err := Genesis(store, mp, 100, [types.ExtraDataLen]byte{})
	require.NoError(t, err)

	a, b := addr(1), addr(2)
	require.NoError(t, nm.Mint(a, u(100)))
	require.NoError(t, nm.PushTransaction(types.NewTransaction(a, b, u(10), nil)))
	mined := mineOneBlock(t, nm, [types.ExtraDataLen]byte{})

	resumed, err := Resume(store, mempool.New(100), 100, [types.ExtraDataLen]byte{})
	require.NoError(t, err)
	assert.Equal(t, mined.Header.BlockID+1, resumed.CurrentBlockID())
	assert.Equal(t, mined.BlockHash, resumed.PrevBlockHash())
}
