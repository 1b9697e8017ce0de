package types

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// HashLength is the fixed width of a Hash in bytes.
const HashLength = 32

// Hash is a 32-byte BLAKE3 digest of a canonical byte encoding.
type Hash [HashLength]byte

// ZeroHash is the hash used as the genesis block's prev_block value.
var ZeroHash = Hash{}

// HashBytes computes the BLAKE3 digest of buf.
func HashBytes(buf []byte) Hash {
	return Hash(blake3.Sum256(buf))
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, h[:])
	return out
}

// String renders the hash as a 0x-prefixed lowercase hex string.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}
