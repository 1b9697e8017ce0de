/*
Package vm is the node's execution engine. A Pool is built fresh for
every mined block: FromTxPool seeds a map with the current balance of
every address a batch of transactions touches, and ProcessTx replays
those transactions against the map exactly once. The result is the
block's balance-delta set, handed back to pkg/chainnode for commit.
*/
package vm
