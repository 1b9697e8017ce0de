package dispatcher

import (
	"fmt"

	"github.com/cuemby/warrenchain/pkg/types"
)

// Command is the node's request sum type. The four concrete variants
// below are the only implementations; Base.Call type-switches on
// them exhaustively.
type Command interface {
	Name() string
	Summary() string
}

// SubmitTx admits a transaction into the mempool.
type SubmitTx struct {
	Tx types.Transaction
}

func (SubmitTx) Name() string { return "submit_tx" }
func (c SubmitTx) Summary() string {
	return fmt.Sprintf("tx from=%s to=%s amount=%s", c.Tx.From, c.Tx.To, c.Tx.Amount)
}

// GetBalance queries an address's current balance.
type GetBalance struct {
	Addr types.Address
}

func (GetBalance) Name() string      { return "get_balance" }
func (c GetBalance) Summary() string { return fmt.Sprintf("addr=%s", c.Addr) }

// GetNonce queries an address's current nonce.
type GetNonce struct {
	Addr types.Address
}

func (GetNonce) Name() string      { return "get_nonce" }
func (c GetNonce) Summary() string { return fmt.Sprintf("addr=%s", c.Addr) }

// MineBlock runs one drain → execute → build → seal → commit cycle.
type MineBlock struct {
	ExtraData [types.ExtraDataLen]byte
}

func (MineBlock) Name() string    { return "mine_block" }
func (MineBlock) Summary() string { return "mine new block" }
