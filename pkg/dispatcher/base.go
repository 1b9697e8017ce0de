package dispatcher

import (
	"context"
	"fmt"

	"github.com/cuemby/warrenchain/pkg/chainnode"
	"github.com/cuemby/warrenchain/pkg/metrics"
)

// Base is the innermost service: it dispatches each Command straight
// to the NodeManager, synchronously, with no further middleware.
type Base struct {
	node *chainnode.NodeManager
}

// NewBase wraps node as a Service[Command, Response].
func NewBase(node *chainnode.NodeManager) *Base {
	return &Base{node: node}
}

// Call implements Service.
func (b *Base) Call(ctx context.Context, cmd Command) (Response, error) {
	switch c := cmd.(type) {
	case SubmitTx:
		if err := b.node.PushTransaction(c.Tx); err != nil {
			return Response{}, err
		}
		metrics.TransactionsSubmittedTotal.Inc()
		return OKResponse(), nil

	case GetBalance:
		balance, err := b.node.GetBalance(c.Addr)
		if err != nil {
			return Response{}, err
		}
		return BalanceResponse(balance), nil

	case GetNonce:
		nonce, err := b.node.GetNonce(c.Addr)
		if err != nil {
			return Response{}, err
		}
		return NonceResponse(nonce), nil

	case MineBlock:
		timer := metrics.NewTimer()
		pool, txs, err := b.node.ProcessExecutionTransaction()
		if err != nil {
			return Response{}, err
		}
		block := b.node.CreateBlockWithProcessedTxPool(pool, txs)
		if err := b.node.MineWithBlock(block, c.ExtraData); err != nil {
			return Response{}, err
		}
		metrics.BlocksMinedTotal.Inc()
		metrics.TransactionsSkippedTotal.Add(float64(pool.Skipped()))
		timer.ObserveDuration(metrics.BlockMineDuration)
		return OKResponse(), nil

	default:
		return Response{}, fmt.Errorf("dispatcher: unknown command %T", cmd)
	}
}
