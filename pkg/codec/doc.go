/*
Package codec implements the deterministic binary wire format for
everything pkg/storage persists: addresses, hashes, 256-bit balances,
transactions, and blocks. It depends on pkg/types and nothing else —
no bucket names, no bbolt handles — so the same encoding can seal a
block's hash before a transaction even begins.

Every collection (transaction list, balance-delta list) is prefixed
with a LEB128 varint length, giving every nested collection the same
round-trip shape regardless of where it's embedded.
*/
package codec
