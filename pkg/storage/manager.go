package storage

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/cuemby/warrenchain/pkg/types"
)

// TableID names one of the node's three persisted tables, mirroring
// the original schema's TableId enum.
type TableID int

const (
	TableBalance TableID = iota
	TableNonce
	TableBlock
)

func (id TableID) bucketName() []byte {
	switch id {
	case TableBalance:
		return []byte("Balance")
	case TableNonce:
		return []byte("Nonce")
	case TableBlock:
		return []byte("Block")
	default:
		panic(fmt.Sprintf("storage: unknown table id %d", id))
	}
}

var allTables = []TableID{TableBalance, TableNonce, TableBlock}

// Manager owns the single bbolt file backing a node and exposes one
// typed Table per bucket. It is safe for concurrent use: bbolt
// serializes writers internally and every Table method opens its own
// transaction.
type Manager struct {
	db *bolt.DB

	balances *Table[types.Address, types.Uint256]
	nonces   *Table[types.Address, uint64]
	blocks   *Table[uint64, types.Block]
}

// DefaultDBFileName is the on-disk file name used when a caller opens
// a data directory rather than a specific file path.
const DefaultDBFileName = "chain.db"

// CreateOrOpen opens the bbolt database at path, creating it and its
// buckets if they don't exist yet.
func CreateOrOpen(path string) (*Manager, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, newErr(ErrDatabase, "", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, id := range allTables {
			if _, err := tx.CreateBucketIfNotExists(id.bucketName()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, newErr(ErrTable, "", err)
	}

	m := &Manager{db: db}
	m.balances = newTable(db, TableBalance.bucketName(), addressCodec, uint256Codec, types.ZeroUint256())
	m.nonces = newTable(db, TableNonce.bucketName(), addressCodec, uint64Codec, 0)
	m.blocks = newTable(db, TableBlock.bucketName(), uint64Codec, blockCodec, types.Block{})

	return m, nil
}

// Close releases the underlying bbolt file handle.
func (m *Manager) Close() error {
	return m.db.Close()
}

// BalanceGet returns addr's current balance, or zero if it has never
// received a transfer.
func (m *Manager) BalanceGet(addr types.Address) (types.Uint256, error) {
	return m.balances.Get(addr)
}

// BalanceInsert unconditionally sets addr's stored balance.
func (m *Manager) BalanceInsert(addr types.Address, balance types.Uint256) error {
	return m.balances.Insert(addr, balance)
}

// BalanceMultiInsert commits a whole block's worth of final balances
// in a single write transaction — the first half of the two-phase
// block commit (see pkg/chainnode).
func (m *Manager) BalanceMultiInsert(deltas []types.BalanceDelta) error {
	items := make(map[types.Address]types.Uint256, len(deltas))
	for _, d := range deltas {
		items[d.Addr] = d.Amount
	}
	return m.balances.MultiInsert(items)
}

// BalanceUpdate applies f to addr's current balance and persists the
// result.
func (m *Manager) BalanceUpdate(addr types.Address, f func(types.Uint256) types.Uint256) (types.Uint256, error) {
	return m.balances.Update(addr, f)
}

// NonceGet returns addr's current nonce, or zero if unset.
func (m *Manager) NonceGet(addr types.Address) (uint64, error) {
	return m.nonces.Get(addr)
}

// NonceIncrement increments and persists addr's nonce, returning the
// new value.
func (m *Manager) NonceIncrement(addr types.Address) (uint64, error) {
	return m.nonces.Update(addr, func(n uint64) uint64 { return n + 1 })
}

// BlockGet returns the sealed block stored at height, or the zero
// Block if no block has been mined at that height yet.
func (m *Manager) BlockGet(height uint64) (types.Block, error) {
	return m.blocks.Get(height)
}

// BlockInsert persists a sealed block — the second half of the
// two-phase block commit.
func (m *Manager) BlockInsert(b types.Block) error {
	return m.blocks.Insert(b.Header.BlockID, b)
}

// BlockScan walks every stored block in ascending height order.
func (m *Manager) BlockScan(fn func(uint64, types.Block) error) error {
	return m.blocks.Scan(fn)
}

// Balances exposes the raw balance table for callers (tests, export
// tooling) that need MultiGet/Scan directly.
func (m *Manager) Balances() *Table[types.Address, types.Uint256] { return m.balances }

// Nonces exposes the raw nonce table.
func (m *Manager) Nonces() *Table[types.Address, uint64] { return m.nonces }

// Blocks exposes the raw block table.
func (m *Manager) Blocks() *Table[uint64, types.Block] { return m.blocks }
