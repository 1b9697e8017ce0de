package dispatcher

import "github.com/cuemby/warrenchain/pkg/types"

// Response is the node's reply sum type, collapsed into a single
// struct: each Command variant populates exactly one meaningful
// field, leaving the others at their zero value.
type Response struct {
	Balance types.Uint256
	Nonce   uint64
}

// OKResponse is returned by commands with no payload (SubmitTx,
// MineBlock) on success.
func OKResponse() Response { return Response{} }

// BalanceResponse wraps a GetBalance result.
func BalanceResponse(balance types.Uint256) Response { return Response{Balance: balance} }

// NonceResponse wraps a GetNonce result.
func NonceResponse(nonce uint64) Response { return Response{Nonce: nonce} }
