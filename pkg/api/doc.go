/*
Package api exposes a node's operational HTTP surface: liveness at
/health, readiness (storage and chain-tip reachability) at /ready, and
Prometheus scraping at /metrics. It does not carry chain RPCs — those
are reached through pkg/dispatcher by an embedding command.
*/
package api
