/*
Package metrics defines and registers the node's Prometheus metrics:
chain height, mempool depth and capacity, mined-block latency, and
dispatcher command counts/latency by command name.

Collector samples the gauges off a running *chainnode.NodeManager on a
fixed interval; counters and histograms are updated inline by the
dispatcher and mining path as events occur. Handler exposes the
registry over HTTP for scraping.
*/
package metrics
