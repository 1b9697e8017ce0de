package types

// ExtraDataLen is the fixed width of a block's mining-seal payload.
const ExtraDataLen = 32

// BlockHeader is the fixed-size portion of a block's identity.
type BlockHeader struct {
	BlockID   uint64
	PrevBlock Hash
	ExtraData [ExtraDataLen]byte
}

// BlockData is the variable-size portion of a block: the ordered
// transaction list it was built from, and the final balance of every
// address any of those transactions touched.
type BlockData struct {
	Transactions []Transaction
	Tokens       []BalanceDelta
}

// Block is a sealed, hash-identified unit of the chain. BlockHash is
// always H(encode(Header) || encode(Data)) for a block accepted into
// storage; pkg/codec.HashInner computes it from the header and data
// before the block is sealed.
type Block struct {
	BlockHash Hash
	Header    BlockHeader
	Data      BlockData
}

// NewBlock constructs an unsealed block (BlockHash left zero) from a
// header and data; callers must seal it with pkg/codec.HashInner
// before persisting it.
func NewBlock(header BlockHeader, data BlockData) Block {
	return Block{Header: header, Data: data}
}

// Genesis builds block 0: empty transaction list and delta set, zero
// prev_block, and the given extra_data seed. The caller must still
// seal it with pkg/codec.HashInner before inserting it into storage.
func Genesis(extraData [ExtraDataLen]byte) Block {
	return NewBlock(
		BlockHeader{BlockID: 0, PrevBlock: ZeroHash, ExtraData: extraData},
		BlockData{},
	)
}

// ID returns the block's height.
func (b Block) ID() uint64 { return b.Header.BlockID }
