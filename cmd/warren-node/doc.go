// Command warren-node is the node's single binary entry point. It
// exposes three subcommands: "host serve" runs the TLS rendezvous
// peer-discovery service, "node serve" runs a chain node (storage,
// mempool, dispatcher, health/metrics HTTP, and an optional rendezvous
// client), and "db-utils" dumps a node's database tables as JSON for
// offline inspection.
package main
