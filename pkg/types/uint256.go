package types

import (
	"math/big"
)

// Uint256ByteLen is the wire width of a Uint256: 32 bytes, little-endian.
const Uint256ByteLen = 32

// uint256Max is 2**256 - 1, used to detect overflow on add/mul.
var uint256Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Uint256 is a 256-bit unsigned integer. The zero value is zero.
// Arithmetic is provided in checked (returns ok=false on over/underflow)
// and saturating (clamps to [0, 2^256-1]) flavors, mirroring the
// original Rust Uint256's checked_* / saturating_* pairs.
type Uint256 struct {
	v big.Int
}

// ZeroUint256 is the default Uint256 value.
func ZeroUint256() Uint256 { return Uint256{} }

// Uint256FromUint64 constructs a Uint256 from a u64.
func Uint256FromUint64(v uint64) Uint256 {
	var u Uint256
	u.v.SetUint64(v)
	return u
}

// Uint256FromBigInt constructs a Uint256 from a big.Int, clamping
// negative values to zero and values above the 256-bit range to
// 2^256-1. Intended for tests and internal construction; untrusted
// input should go through little-endian byte decoding instead.
func Uint256FromBigInt(v *big.Int) Uint256 {
	var u Uint256
	switch {
	case v.Sign() < 0:
		u.v.SetInt64(0)
	case v.Cmp(uint256Max) > 0:
		u.v.Set(uint256Max)
	default:
		u.v.Set(v)
	}
	return u
}

// IsZero reports whether the value is zero.
func (u Uint256) IsZero() bool { return u.v.Sign() == 0 }

// BigInt returns a copy of the underlying value as a *big.Int.
func (u Uint256) BigInt() *big.Int { return new(big.Int).Set(&u.v) }

// String renders the value in base 10, matching the original type's
// Display impl.
func (u Uint256) String() string { return u.v.String() }

// Cmp compares u to other: -1, 0, or 1.
func (u Uint256) Cmp(other Uint256) int { return u.v.Cmp(&other.v) }

// Equal reports whether u and other hold the same value.
func (u Uint256) Equal(other Uint256) bool { return u.Cmp(other) == 0 }

// CheckedAdd returns u+rhs and ok=true, or ok=false if the sum would
// exceed 2^256-1.
func (u Uint256) CheckedAdd(rhs Uint256) (Uint256, bool) {
	sum := new(big.Int).Add(&u.v, &rhs.v)
	if sum.Cmp(uint256Max) > 0 {
		return Uint256{}, false
	}
	var out Uint256
	out.v.Set(sum)
	return out, true
}

// CheckedSub returns u-rhs and ok=true, or ok=false if rhs > u
// (unsigned underflow).
func (u Uint256) CheckedSub(rhs Uint256) (Uint256, bool) {
	if u.v.Cmp(&rhs.v) < 0 {
		return Uint256{}, false
	}
	var out Uint256
	out.v.Sub(&u.v, &rhs.v)
	return out, true
}

// CheckedMul returns u*rhs and ok=true, or ok=false on overflow.
func (u Uint256) CheckedMul(rhs Uint256) (Uint256, bool) {
	prod := new(big.Int).Mul(&u.v, &rhs.v)
	if prod.Cmp(uint256Max) > 0 {
		return Uint256{}, false
	}
	var out Uint256
	out.v.Set(prod)
	return out, true
}

// CheckedDiv returns u/rhs and ok=true, or ok=false if rhs is zero.
func (u Uint256) CheckedDiv(rhs Uint256) (Uint256, bool) {
	if rhs.IsZero() {
		return Uint256{}, false
	}
	var out Uint256
	out.v.Div(&u.v, &rhs.v)
	return out, true
}

// SaturatingAdd returns u+rhs, clamped to 2^256-1 on overflow.
func (u Uint256) SaturatingAdd(rhs Uint256) Uint256 {
	if v, ok := u.CheckedAdd(rhs); ok {
		return v
	}
	return Uint256FromBigInt(uint256Max)
}

// SaturatingSub returns u-rhs, clamped to zero on underflow.
func (u Uint256) SaturatingSub(rhs Uint256) Uint256 {
	if v, ok := u.CheckedSub(rhs); ok {
		return v
	}
	return ZeroUint256()
}

// SaturatingMul returns u*rhs, clamped to 2^256-1 on overflow.
func (u Uint256) SaturatingMul(rhs Uint256) Uint256 {
	if v, ok := u.CheckedMul(rhs); ok {
		return v
	}
	return Uint256FromBigInt(uint256Max)
}

// SaturatingDiv returns u/rhs, or zero if rhs is zero.
func (u Uint256) SaturatingDiv(rhs Uint256) Uint256 {
	if v, ok := u.CheckedDiv(rhs); ok {
		return v
	}
	return ZeroUint256()
}

// ToLEBytes renders u as 32 little-endian bytes.
func (u Uint256) ToLEBytes() [Uint256ByteLen]byte {
	var out [Uint256ByteLen]byte
	be := u.v.Bytes() // big-endian, minimal length
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// Uint256FromLEBytes parses a 32-byte little-endian encoding.
func Uint256FromLEBytes(b [Uint256ByteLen]byte) Uint256 {
	be := make([]byte, Uint256ByteLen)
	for i, v := range b {
		be[Uint256ByteLen-1-i] = v
	}
	var u Uint256
	u.v.SetBytes(be)
	return u
}
