package metrics

import (
	"time"

	"github.com/cuemby/warrenchain/pkg/chainnode"
)

// Collector periodically samples gauges off a running NodeManager.
type Collector struct {
	node   *chainnode.NodeManager
	stopCh chan struct{}
}

// NewCollector creates a new metrics collector for node.
func NewCollector(node *chainnode.NodeManager) *Collector {
	return &Collector{
		node:   node,
		stopCh: make(chan struct{}),
	}
}

// Start begins collecting metrics on a fixed interval.
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	ChainHeight.Set(float64(c.node.CurrentBlockID()))
	MempoolDepth.Set(float64(c.node.MempoolLen()))
}
