package types

import (
	"encoding/hex"
	"fmt"
)

// AddressLength is the fixed width of an Address in bytes.
const AddressLength = 20

// Address is a 20-byte account identifier. It is comparable and
// orderable, so it can be used directly as a Go map key or as a bbolt
// bucket key.
type Address [AddressLength]byte

// ZeroAddress is the default, all-zero address.
var ZeroAddress = Address{}

// AddressFromBytes copies b into a new Address. It returns an error if
// b is not exactly AddressLength bytes long.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("types: address must be %d bytes, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// Compare orders two addresses lexicographically by byte value.
func (a Address) Compare(other Address) int {
	for i := range a {
		if a[i] != other[i] {
			if a[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String renders the address as a 0x-prefixed lowercase hex string.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}
