// Package mempool implements the node's pending-transaction queue: a
// bounded, channel-backed FIFO that many producers can push into and
// many consumers can drain, with no lock held across a blocking
// operation.
package mempool

import (
	"github.com/cuemby/warrenchain/pkg/types"
)

// DefaultCapacity is the queue depth used when a node doesn't override it.
const DefaultCapacity = 100

// Mempool is a bounded multi-producer/multi-consumer transaction
// queue. A buffered Go channel already gives FIFO ordering and
// lock-free concurrent access, so this type is a thin, typed wrapper
// rather than a hand-rolled ring buffer.
type Mempool struct {
	txs chan types.Transaction
}

// New creates a Mempool with the given capacity. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Mempool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Mempool{txs: make(chan types.Transaction, capacity)}
}

// Push appends tx to the queue. On success it returns ok=true. If the
// queue is full it returns the transaction back to the caller with
// ok=false — overflow is a normal signal, not an error, matching the
// original transaction pool's size-threshold behavior.
func (m *Mempool) Push(tx types.Transaction) (types.Transaction, bool) {
	select {
	case m.txs <- tx:
		return types.Transaction{}, true
	default:
		return tx, false
	}
}

// Pop removes and returns the oldest transaction, if any.
func (m *Mempool) Pop() (types.Transaction, bool) {
	select {
	case tx := <-m.txs:
		return tx, true
	default:
		return types.Transaction{}, false
	}
}

// Len returns a snapshot of the current queue depth. Like any
// concurrent queue's length, it may be stale by the time the caller
// acts on it.
func (m *Mempool) Len() int {
	return len(m.txs)
}

// Cap returns the queue's fixed capacity.
func (m *Mempool) Cap() int {
	return cap(m.txs)
}

// Drain pops up to max transactions in FIFO order, stopping early if
// the queue empties first. Used by the block pipeline to pull a
// bounded batch for execution.
func (m *Mempool) Drain(max int) []types.Transaction {
	out := make([]types.Transaction, 0, max)
	for i := 0; i < max; i++ {
		tx, ok := m.Pop()
		if !ok {
			break
		}
		out = append(out, tx)
	}
	return out
}
