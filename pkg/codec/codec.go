// Package codec implements the deterministic binary encoding used for
// every persisted entity: addresses, 256-bit balances, hashes,
// transactions, and blocks. Encoding is append-only and
// allocation-light by design — every Encode* function except
// EncodeInner writes into a caller-owned bytes.Buffer rather than
// returning freshly allocated slices, matching the single-pass style the storage layer needs when
// assembling multi-key writes.
//
// Wire layout (see SPEC_FULL.md §6):
//
//	header = u64 block_id || 32 bytes prev_block || 32 bytes extra_data   (72 bytes, fixed)
//	data   = varint-prefixed tx list || varint-prefixed balance-delta list
//	tx     = 20 bytes from || 20 bytes to || 32 bytes amount (LE) || varint-prefixed data bytes
//	delta  = 20 bytes addr || 32 bytes amount (LE)
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cuemby/warrenchain/pkg/types"
)

// EncodeAddress appends the 20-byte address to buf.
func EncodeAddress(buf *bytes.Buffer, a types.Address) {
	buf.Write(a[:])
}

// DecodeAddress reads a 20-byte address from r.
func DecodeAddress(r *bytes.Reader) (types.Address, error) {
	var a types.Address
	if _, err := readFull(r, a[:]); err != nil {
		return a, fmt.Errorf("codec: decode address: %w", err)
	}
	return a, nil
}

// EncodeHash appends the 32-byte hash to buf.
func EncodeHash(buf *bytes.Buffer, h types.Hash) {
	buf.Write(h[:])
}

// DecodeHash reads a 32-byte hash from r.
func DecodeHash(r *bytes.Reader) (types.Hash, error) {
	var h types.Hash
	if _, err := readFull(r, h[:]); err != nil {
		return h, fmt.Errorf("codec: decode hash: %w", err)
	}
	return h, nil
}

// EncodeUint256 appends the 32-byte little-endian encoding of v to buf.
func EncodeUint256(buf *bytes.Buffer, v types.Uint256) {
	b := v.ToLEBytes()
	buf.Write(b[:])
}

// DecodeUint256 reads a 32-byte little-endian Uint256 from r.
func DecodeUint256(r *bytes.Reader) (types.Uint256, error) {
	var b [types.Uint256ByteLen]byte
	if _, err := readFull(r, b[:]); err != nil {
		return types.Uint256{}, fmt.Errorf("codec: decode uint256: %w", err)
	}
	return types.Uint256FromLEBytes(b), nil
}

// EncodeBytes appends a varint length prefix followed by b's raw bytes.
func EncodeBytes(buf *bytes.Buffer, b []byte) {
	putUvarint(buf, uint64(len(b)))
	buf.Write(b)
}

// DecodeBytes reads a varint-length-prefixed byte slice from r.
func DecodeBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUvarint(r, "bytes")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if n > 0 {
		if _, err := readFull(r, out); err != nil {
			return nil, fmt.Errorf("codec: decode bytes body: %w", err)
		}
	}
	return out, nil
}

// EncodeTransaction appends the wire encoding of tx to buf.
func EncodeTransaction(buf *bytes.Buffer, tx types.Transaction) {
	EncodeAddress(buf, tx.From)
	EncodeAddress(buf, tx.To)
	EncodeUint256(buf, tx.Amount)
	EncodeBytes(buf, tx.Data)
}

// DecodeTransaction reads a single transaction from r.
func DecodeTransaction(r *bytes.Reader) (types.Transaction, error) {
	from, err := DecodeAddress(r)
	if err != nil {
		return types.Transaction{}, err
	}
	to, err := DecodeAddress(r)
	if err != nil {
		return types.Transaction{}, err
	}
	amount, err := DecodeUint256(r)
	if err != nil {
		return types.Transaction{}, err
	}
	data, err := DecodeBytes(r)
	if err != nil {
		return types.Transaction{}, err
	}
	return types.Transaction{From: from, To: to, Amount: amount, Data: data}, nil
}

// EncodeBalanceDelta appends the wire encoding of d to buf.
func EncodeBalanceDelta(buf *bytes.Buffer, d types.BalanceDelta) {
	EncodeAddress(buf, d.Addr)
	EncodeUint256(buf, d.Amount)
}

// DecodeBalanceDelta reads a single balance delta from r.
func DecodeBalanceDelta(r *bytes.Reader) (types.BalanceDelta, error) {
	addr, err := DecodeAddress(r)
	if err != nil {
		return types.BalanceDelta{}, err
	}
	amount, err := DecodeUint256(r)
	if err != nil {
		return types.BalanceDelta{}, err
	}
	return types.BalanceDelta{Addr: addr, Amount: amount}, nil
}

// EncodeTransactionList appends a varint count followed by each
// transaction in order.
func EncodeTransactionList(buf *bytes.Buffer, txs []types.Transaction) {
	putUvarint(buf, uint64(len(txs)))
	for _, tx := range txs {
		EncodeTransaction(buf, tx)
	}
}

// DecodeTransactionList reads a varint-prefixed transaction list.
func DecodeTransactionList(r *bytes.Reader) ([]types.Transaction, error) {
	n, err := readUvarint(r, "transactions")
	if err != nil {
		return nil, err
	}
	out := make([]types.Transaction, 0, n)
	for i := uint64(0); i < n; i++ {
		tx, err := DecodeTransaction(r)
		if err != nil {
			return nil, fmt.Errorf("codec: decode transaction %d/%d: %w", i, n, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

// EncodeBalanceDeltaList appends a varint count followed by each delta.
func EncodeBalanceDeltaList(buf *bytes.Buffer, deltas []types.BalanceDelta) {
	putUvarint(buf, uint64(len(deltas)))
	for _, d := range deltas {
		EncodeBalanceDelta(buf, d)
	}
}

// DecodeBalanceDeltaList reads a varint-prefixed balance delta list.
func DecodeBalanceDeltaList(r *bytes.Reader) ([]types.BalanceDelta, error) {
	n, err := readUvarint(r, "tokens")
	if err != nil {
		return nil, err
	}
	out := make([]types.BalanceDelta, 0, n)
	for i := uint64(0); i < n; i++ {
		d, err := DecodeBalanceDelta(r)
		if err != nil {
			return nil, fmt.Errorf("codec: decode balance delta %d/%d: %w", i, n, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// EncodeBlockHeader appends the fixed 72-byte header encoding to buf.
func EncodeBlockHeader(buf *bytes.Buffer, h types.BlockHeader) {
	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], h.BlockID)
	buf.Write(idBytes[:])
	EncodeHash(buf, h.PrevBlock)
	buf.Write(h.ExtraData[:])
}

// DecodeBlockHeader reads the fixed 72-byte header encoding from r.
func DecodeBlockHeader(r *bytes.Reader) (types.BlockHeader, error) {
	var idBytes [8]byte
	if _, err := readFull(r, idBytes[:]); err != nil {
		return types.BlockHeader{}, fmt.Errorf("codec: decode block_id: %w", err)
	}
	prev, err := DecodeHash(r)
	if err != nil {
		return types.BlockHeader{}, fmt.Errorf("codec: decode prev_block: %w", err)
	}
	var extra [types.ExtraDataLen]byte
	if _, err := readFull(r, extra[:]); err != nil {
		return types.BlockHeader{}, fmt.Errorf("codec: decode extra_data: %w", err)
	}
	return types.BlockHeader{
		BlockID:   binary.LittleEndian.Uint64(idBytes[:]),
		PrevBlock: prev,
		ExtraData: extra,
	}, nil
}

// EncodeBlockData appends the variable-length data section to buf.
func EncodeBlockData(buf *bytes.Buffer, d types.BlockData) {
	EncodeTransactionList(buf, d.Transactions)
	EncodeBalanceDeltaList(buf, d.Tokens)
}

// DecodeBlockData reads the variable-length data section from r.
func DecodeBlockData(r *bytes.Reader) (types.BlockData, error) {
	txs, err := DecodeTransactionList(r)
	if err != nil {
		return types.BlockData{}, err
	}
	tokens, err := DecodeBalanceDeltaList(r)
	if err != nil {
		return types.BlockData{}, err
	}
	return types.BlockData{Transactions: txs, Tokens: tokens}, nil
}

// EncodeInner returns encode(header) || encode(data): the bytes a
// block's hash is computed over. It never includes the block's own
// hash field, so hashing is always well-defined before a hash exists.
func EncodeInner(header types.BlockHeader, data types.BlockData) []byte {
	var buf bytes.Buffer
	EncodeBlockHeader(&buf, header)
	EncodeBlockData(&buf, data)
	return buf.Bytes()
}

// HashInner computes H(encode(header) || encode(data)).
func HashInner(header types.BlockHeader, data types.BlockData) types.Hash {
	return types.HashBytes(EncodeInner(header, data))
}

// EncodeBlock appends a full block (hash || inner) to buf — the
// representation stored as the Block table's value.
func EncodeBlock(buf *bytes.Buffer, b types.Block) {
	EncodeHash(buf, b.BlockHash)
	EncodeBlockHeader(buf, b.Header)
	EncodeBlockData(buf, b.Data)
}

// DecodeBlock reads a full block from r.
func DecodeBlock(r *bytes.Reader) (types.Block, error) {
	hash, err := DecodeHash(r)
	if err != nil {
		return types.Block{}, fmt.Errorf("codec: decode block_hash: %w", err)
	}
	header, err := DecodeBlockHeader(r)
	if err != nil {
		return types.Block{}, err
	}
	data, err := DecodeBlockData(r)
	if err != nil {
		return types.Block{}, err
	}
	return types.Block{BlockHash: hash, Header: header, Data: data}, nil
}

// MarshalBlock is a convenience wrapper returning the block's full
// encoded bytes.
func MarshalBlock(b types.Block) []byte {
	var buf bytes.Buffer
	EncodeBlock(&buf, b)
	return buf.Bytes()
}

// UnmarshalBlock decodes a block previously produced by MarshalBlock,
// rejecting any trailing bytes.
func UnmarshalBlock(raw []byte) (types.Block, error) {
	r := bytes.NewReader(raw)
	b, err := DecodeBlock(r)
	if err != nil {
		return types.Block{}, err
	}
	if r.Len() != 0 {
		return types.Block{}, fmt.Errorf("codec: %d trailing bytes after block", r.Len())
	}
	return b, nil
}

func readFull(r *bytes.Reader, out []byte) (int, error) {
	n := 0
	for n < len(out) {
		m, err := r.Read(out[n:])
		n += m
		if err != nil {
			return n, err
		}
		if m == 0 {
			return n, fmt.Errorf("codec: unexpected EOF")
		}
	}
	return n, nil
}
