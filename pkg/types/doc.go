/*
Package types defines the wire and in-memory data model shared by
every layer of the node: addresses, the 256-bit balance type, content
hashes, transactions, and blocks.

These types carry no I/O or storage logic. Encoding lives in
pkg/codec, which depends on this package and not the other way
around, so a type can be round-tripped through storage without the
storage layer leaking into the domain model.

# Layout

	Address    — 20-byte account identifier, orderable, zero-valued by default
	Uint256    — 256-bit unsigned integer, checked and saturating arithmetic
	Hash       — 32-byte BLAKE3 digest
	Transaction — {from, to, amount, data}
	BalanceDelta — {addr, amount}; amount is the address's FINAL post-block
	               balance, not a diff
	BlockHeader — {block_id, prev_block, extra_data}
	BlockData   — {transactions, tokens}
	Block       — {block_hash, header, data}
*/
package types
