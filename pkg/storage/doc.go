/*
Package storage is the node's durable key/value layer: three bbolt
buckets (Balance, Nonce, Block) behind a generic Table[K, V] accessor
that mirrors the original storage crate's TableAccessContext — every
Get defaults missing keys to the value type's zero value instead of
erroring, and every Insert/Update commits its own transaction so
callers never hold a table handle across a blocking call.

Manager is the single entry point: CreateOrOpen returns one bound to
a bbolt file, with typed accessors for each table already wired to
their codecs (see codecs.go), so pkg/chainnode and pkg/vm never touch
bbolt directly.
*/
package storage
