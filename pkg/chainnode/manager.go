// Package chainnode implements the node's block pipeline: the
// NodeManager owns the chain tip, the mempool, and storage, and
// orchestrates genesis, transaction admission, and block production.
package chainnode

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/cuemby/warrenchain/pkg/codec"
	"github.com/cuemby/warrenchain/pkg/events"
	"github.com/cuemby/warrenchain/pkg/log"
	"github.com/cuemby/warrenchain/pkg/mempool"
	"github.com/cuemby/warrenchain/pkg/storage"
	"github.com/cuemby/warrenchain/pkg/types"
	"github.com/cuemby/warrenchain/pkg/vm"
)

// NodeManager owns the running chain state: storage, a mempool, and
// the atomically-tracked tip (current_block_id, prev_block_hash).
//
// current_block_id and prev_block_hash are deliberately not updated
// under a single lock: the counter is a plain atomic and the hash
// cell is an atomically-swapped pointer, updated independently inside
// MineWithBlock. If two MineBlock calls race, each observes and
// advances the tip without coordinating with the other — a known,
// accepted weakness (design note: concurrent mining can fork the
// lineage; callers are expected to serialize MineBlock calls, e.g.
// with a single ticker goroutine).
type NodeManager struct {
	storage *storage.Manager
	mempool *mempool.Mempool
	events  *events.Broker
	logger  zerolog.Logger

	maxMempoolDrain int

	currentBlockID atomic.Uint64
	prevBlockHash  atomic.Pointer[types.Hash]
}

// Genesis constructs the zero block, persists it, and returns a
// NodeManager with current_block_id=1 and prev_block_hash set to the
// genesis hash.
func Genesis(store *storage.Manager, mp *mempool.Mempool, maxMempoolDrain int, extraData [types.ExtraDataLen]byte) (*NodeManager, error) {
	genesis := types.Genesis(extraData)
	hash := codec.HashInner(genesis.Header, genesis.Data)
	genesis.BlockHash = hash

	if err := store.BlockInsert(genesis); err != nil {
		return nil, err
	}

	nm := &NodeManager{storage: store, mempool: mp, maxMempoolDrain: maxMempoolDrain, logger: log.WithComponent("chainnode")}
	nm.currentBlockID.Store(1)
	nm.prevBlockHash.Store(&hash)
	nm.logger.Info().Str("block_hash", hash.String()).Msg("genesis block created")
	return nm, nil
}

// Resume reconstructs a NodeManager's tip from whatever has already
// been persisted in store, so a restarted node server picks up where
// it left off instead of re-running Genesis against a non-empty
// database. If store has no blocks at all, Resume falls back to
// Genesis.
func Resume(store *storage.Manager, mp *mempool.Mempool, maxMempoolDrain int, extraData [types.ExtraDataLen]byte) (*NodeManager, error) {
	var (
		found bool
		tipID uint64
		tip   types.Hash
	)
	err := store.BlockScan(func(id uint64, b types.Block) error {
		if !found || id > tipID {
			found = true
			tipID = id
			tip = b.BlockHash
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger := log.WithComponent("chainnode")
	if !found {
		logger.Info().Msg("no existing blocks, falling back to genesis")
		return Genesis(store, mp, maxMempoolDrain, extraData)
	}

	nm := &NodeManager{storage: store, mempool: mp, maxMempoolDrain: maxMempoolDrain, logger: logger}
	nm.currentBlockID.Store(tipID + 1)
	nm.prevBlockHash.Store(&tip)
	logger.Info().Uint64("height", tipID).Msg("resumed from existing database")
	return nm, nil
}

// SetBroker attaches an events.Broker that PushTransaction and
// MineWithBlock will publish lifecycle events to. A NodeManager with no
// broker attached skips publishing entirely.
func (nm *NodeManager) SetBroker(b *events.Broker) {
	nm.events = b
}

func (nm *NodeManager) publish(e *events.Event) {
	if nm.events != nil {
		nm.events.Publish(e)
	}
}

// Mint directly sets addr's balance, bypassing the mempool and block
// pipeline entirely. Test and bootstrapping use only.
func (nm *NodeManager) Mint(addr types.Address, value types.Uint256) error {
	return nm.storage.BalanceInsert(addr, value)
}

// PushTransaction admits tx into the mempool. Returns ErrMempoolFull
// if the queue is at capacity.
func (nm *NodeManager) PushTransaction(tx types.Transaction) error {
	if _, ok := nm.mempool.Push(tx); !ok {
		nm.logger.Warn().Str("from", tx.From.String()).Msg("mempool full, rejecting transaction")
		nm.publish(&events.Event{Type: events.EventMempoolFull})
		return ErrMempoolFull
	}
	nm.publish(&events.Event{Type: events.EventTxSubmitted})
	return nil
}

// ProcessExecutionTransaction drains up to maxMempoolDrain
// transactions, builds a vm.Pool seeded with their touched balances,
// and runs the pool's transfers. It returns the processed pool and
// the exact transaction list it consumed, which the caller threads
// into CreateBlockWithProcessedTxPool.
func (nm *NodeManager) ProcessExecutionTransaction() (*vm.Pool, []types.Transaction, error) {
	txs := nm.mempool.Drain(nm.maxMempoolDrain)

	pool, err := vm.FromTxPool(nm.storage, txs)
	if err != nil {
		return nil, nil, err
	}
	pool.ProcessTx(txs)

	if skipped := pool.Skipped(); skipped > 0 {
		nm.logger.Warn().Int("skipped", skipped).Msg("transactions skipped due to insufficient balance or receiver overflow")
		nm.publish(&events.Event{
			Type:     events.EventTxSkipped,
			Metadata: map[string]string{"count": strconv.Itoa(skipped)},
		})
	}

	return pool, txs, nil
}

// CreateBlockWithProcessedTxPool snapshots the current tip and builds
// an unsealed block from the given pool's results and the
// transactions it was run against.
func (nm *NodeManager) CreateBlockWithProcessedTxPool(pool *vm.Pool, txs []types.Transaction) types.Block {
	header := types.BlockHeader{
		BlockID:   nm.currentBlockID.Load(),
		PrevBlock: *nm.prevBlockHash.Load(),
	}
	data := types.BlockData{
		Transactions: txs,
		Tokens:       pool.Deltas(),
	}
	return types.NewBlock(header, data)
}

// MineWithBlock stamps extraData onto block, seals it with its inner
// hash, verifies the seal, and — on success — advances the tip and
// commits the block. The hash verification is a placeholder for real
// proof-of-work validation; it always passes for a block sealed by
// this function, and exists so a future mining scheme can fail it
// without changing this method's contract.
func (nm *NodeManager) MineWithBlock(block types.Block, extraData [types.ExtraDataLen]byte) error {
	block.Header.ExtraData = extraData
	sealed := codec.HashInner(block.Header, block.Data)
	block.BlockHash = sealed

	if recomputed := codec.HashInner(block.Header, block.Data); sealed != recomputed {
		return ErrInvalidExtraData
	}

	nm.currentBlockID.Add(1)
	nm.prevBlockHash.Store(&sealed)

	if err := nm.InsertBlockIntoStorage(block); err != nil {
		nm.logger.Error().Err(err).Uint64("height", block.Header.BlockID).Msg("failed to commit mined block")
		return err
	}
	nm.logger.Info().Uint64("height", block.Header.BlockID).Int("tx_count", len(block.Data.Transactions)).Msg("block mined")
	nm.publish(&events.Event{
		Type:     events.EventBlockMined,
		Metadata: map[string]string{"height": strconv.FormatUint(block.Header.BlockID, 10)},
	})
	return nil
}

// InsertBlockIntoStorage commits a sealed block's balance deltas and
// then the block row itself, as two separate storage transactions —
// balances first. A crash between the two leaves balance state ahead
// of the tip; see the design notes for why this is accepted rather
// than made atomic across both tables.
func (nm *NodeManager) InsertBlockIntoStorage(block types.Block) error {
	if err := nm.storage.BalanceMultiInsert(block.Data.Tokens); err != nil {
		return err
	}
	return nm.storage.BlockInsert(block)
}

// GetBalance returns addr's current balance, defaulting to zero.
func (nm *NodeManager) GetBalance(addr types.Address) (types.Uint256, error) {
	return nm.storage.BalanceGet(addr)
}

// GetNonce returns addr's current nonce, defaulting to zero.
func (nm *NodeManager) GetNonce(addr types.Address) (uint64, error) {
	return nm.storage.NonceGet(addr)
}

// GetBlock returns the committed block at height, or ErrBlockNotExist
// if none has been mined there yet.
func (nm *NodeManager) GetBlock(height uint64) (types.Block, error) {
	b, err := nm.storage.BlockGet(height)
	if err != nil {
		return types.Block{}, err
	}
	if b.BlockHash.IsZero() && height != 0 {
		return types.Block{}, &ErrBlockNotExist{Height: height}
	}
	return b, nil
}

// CurrentBlockID returns the height the next mined block will take.
func (nm *NodeManager) CurrentBlockID() uint64 {
	return nm.currentBlockID.Load()
}

// PrevBlockHash returns the hash the next mined block will link back to.
func (nm *NodeManager) PrevBlockHash() types.Hash {
	return *nm.prevBlockHash.Load()
}

// MempoolLen returns a snapshot of the pending transaction count.
func (nm *NodeManager) MempoolLen() int {
	return nm.mempool.Len()
}
