package chainnode

import (
	"errors"
	"fmt"
)

// ErrMempoolFull is returned by PushTransaction when the mempool is
// at capacity. Callers may retry after a mine cycle drains it.
var ErrMempoolFull = errors.New("chainnode: mempool full")

// ErrBlockNotExist is returned by lookups against a height that has
// no committed block.
type ErrBlockNotExist struct {
	Height uint64
}

func (e *ErrBlockNotExist) Error() string {
	return fmt.Sprintf("chainnode: block %d does not exist", e.Height)
}

// ErrInvalidExtraData is returned by MineWithBlock when the
// recomputed hash doesn't match the block's stamped hash — the
// mining-seal verification step. No state change occurs.
var ErrInvalidExtraData = errors.New("chainnode: mining verification failed")
