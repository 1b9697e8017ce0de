// Package vm implements the block pipeline's execution engine: a
// short-lived, in-memory cache of the balances a batch of
// transactions touches, against which transfers are applied
// serially before being handed back as the block's balance-delta set.
package vm

import (
	"github.com/cuemby/warrenchain/pkg/types"
)

// BalanceReader is the read-only slice of the storage layer the
// execution engine needs to seed its working set. *storage.Manager
// satisfies it.
type BalanceReader interface {
	BalanceGet(addr types.Address) (types.Uint256, error)
}

type state int

const (
	stateInitial state = iota
	stateProcessed
)

// Pool evaluates a batch of transactions against a point-in-time view
// of balances. It is not safe for concurrent use — the block pipeline
// owns exactly one Pool per block and drives it sequentially.
type Pool struct {
	state   state
	tokens  map[types.Address]types.Uint256
	skipped int
}

// FromTxPool builds a Pool by loading the current balance of every
// address mentioned as a from or to in txs. Addresses with no stored
// balance default to zero.
func FromTxPool(store BalanceReader, txs []types.Transaction) (*Pool, error) {
	tokens := make(map[types.Address]types.Uint256, len(txs)*2)

	load := func(addr types.Address) error {
		if _, ok := tokens[addr]; ok {
			return nil
		}
		bal, err := store.BalanceGet(addr)
		if err != nil {
			return err
		}
		tokens[addr] = bal
		return nil
	}

	for _, tx := range txs {
		if err := load(tx.From); err != nil {
			return nil, err
		}
		if err := load(tx.To); err != nil {
			return nil, err
		}
	}

	return &Pool{state: stateInitial, tokens: tokens}, nil
}

// ProcessTx applies txs in order against the pool's in-memory
// balances. A transaction that would underflow its sender or overflow
// its receiver is skipped with no effect — it neither errors nor
// aborts the batch. Calling ProcessTx again once the pool has reached
// the Processed state is a no-op, so a caller can't accidentally
// double-apply a batch.
func (p *Pool) ProcessTx(txs []types.Transaction) {
	if p.state != stateInitial {
		return
	}

	for _, tx := range txs {
		fromBalance, ok := p.tokens[tx.From]
		if !ok {
			p.skipped++
			continue
		}
		newFrom, ok := fromBalance.CheckedSub(tx.Amount)
		if !ok {
			p.skipped++
			continue
		}

		toBalance, ok := p.tokens[tx.To]
		if !ok {
			p.skipped++
			continue
		}
		newTo, ok := toBalance.CheckedAdd(tx.Amount)
		if !ok {
			p.skipped++
			continue
		}

		p.tokens[tx.From] = newFrom
		p.tokens[tx.To] = newTo
	}

	p.state = stateProcessed
}

// Skipped returns the number of transactions that underflowed their
// sender, overflowed their receiver, or named an address the pool had
// not loaded during ProcessTx.
func (p *Pool) Skipped() int {
	return p.skipped
}

// Tokens returns the pool's current balance map: one entry per
// address touched, each holding its final post-batch value. Safe to
// call before or after ProcessTx.
func (p *Pool) Tokens() map[types.Address]types.Uint256 {
	return p.tokens
}

// Deltas renders Tokens as the ordered BalanceDelta list a block's
// data section stores. Order follows Go's map iteration and is not
// itself meaningful — only set membership and final values are.
func (p *Pool) Deltas() []types.BalanceDelta {
	out := make([]types.BalanceDelta, 0, len(p.tokens))
	for addr, bal := range p.tokens {
		out = append(out, types.BalanceDelta{Addr: addr, Amount: bal})
	}
	return out
}
