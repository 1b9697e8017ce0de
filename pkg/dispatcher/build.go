package dispatcher

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/cuemby/warrenchain/pkg/chainnode"
)

// Config controls the dispatcher's middleware stack.
type Config struct {
	Timeout time.Duration
}

// DefaultTimeout is used when a Config leaves Timeout at zero.
const DefaultTimeout = 5 * time.Second

// Build composes the node's full command service: timeout layer
// wrapping logging layer wrapping metrics layer wrapping the base
// NodeManager dispatch,
// mirroring the original dispatcher's ServiceBuilder chain.
func Build(node *chainnode.NodeManager, cfg Config, logger zerolog.Logger) Service[Command, Response] {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := NewBase(node)
	measured := WithMetrics[Command, Response](base)
	logged := WithLogging[Command, Response](measured, logger)
	return WithTimeout[Command, Response](logged, timeout)
}
