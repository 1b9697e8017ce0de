/*
Package chainnode implements the block pipeline described as
NodeManager: genesis initialization, mempool-backed transaction
admission, and the drain → execute → build → seal → commit sequence
that produces each new block.

NodeManager composes pkg/storage (durable state), pkg/mempool
(pending transactions), and pkg/vm (the execution engine) without
owning any persistence or execution logic itself. An optional
pkg/events.Broker, attached via SetBroker, is notified of transaction
admission, skips, mempool overflow, and mined blocks. Resume
reconstructs a NodeManager's tip from an already-populated store, for
restarting a node server against an existing database instead of
running Genesis again.
*/
package chainnode
