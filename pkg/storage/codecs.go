package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/cuemby/warrenchain/pkg/codec"
	"github.com/cuemby/warrenchain/pkg/types"
)

// addressCodec keys a table by a 20-byte account address.
var addressCodec = Codec[types.Address]{
	Encode: func(a types.Address) []byte { return append([]byte(nil), a[:]...) },
	Decode: func(b []byte) (types.Address, error) { return types.AddressFromBytes(b) },
}

// uint256Codec stores a balance. Values are little-endian per the
// shared wire format; this is a value codec, not a key codec, so
// ordering by encoded bytes is irrelevant.
var uint256Codec = Codec[types.Uint256]{
	Encode: func(u types.Uint256) []byte {
		b := u.ToLEBytes()
		return b[:]
	},
	Decode: func(b []byte) (types.Uint256, error) {
		if len(b) != types.Uint256ByteLen {
			return types.Uint256{}, fmt.Errorf("storage: balance value is %d bytes, want %d", len(b), types.Uint256ByteLen)
		}
		var arr [types.Uint256ByteLen]byte
		copy(arr[:], b)
		return types.Uint256FromLEBytes(arr), nil
	},
}

// uint64Codec keys/stores a plain uint64 (used for the nonce table's
// value and the block table's key). Big-endian so bbolt's
// lexicographic key order matches numeric order, letting Scan walk
// blocks by ascending height.
var uint64Codec = Codec[uint64]{
	Encode: func(v uint64) []byte {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		return b[:]
	},
	Decode: func(b []byte) (uint64, error) {
		if len(b) != 8 {
			return 0, fmt.Errorf("storage: uint64 value is %d bytes, want 8", len(b))
		}
		return binary.BigEndian.Uint64(b), nil
	},
}

// blockCodec stores a full sealed block.
var blockCodec = Codec[types.Block]{
	Encode: func(b types.Block) []byte { return codec.MarshalBlock(b) },
	Decode: func(b []byte) (types.Block, error) { return codec.UnmarshalBlock(b) },
}
