package types

// Transaction is a single balance transfer. Data is opaque payload
// carried alongside the transfer and counts toward the transaction's
// encoded size; the execution engine never interprets it (no
// contract execution — see spec Non-goals).
type Transaction struct {
	From   Address
	To     Address
	Amount Uint256
	Data   []byte
}

// NewTransaction constructs a Transaction, copying data defensively so
// the caller's slice can be reused.
func NewTransaction(from, to Address, amount Uint256, data []byte) Transaction {
	var cp []byte
	if len(data) > 0 {
		cp = make([]byte, len(data))
		copy(cp, data)
	}
	return Transaction{From: from, To: to, Amount: amount, Data: cp}
}

// Clone returns a deep copy of the transaction.
func (tx Transaction) Clone() Transaction {
	return NewTransaction(tx.From, tx.To, tx.Amount, tx.Data)
}

// Equal reports whether tx and other are byte-for-byte identical.
func (tx Transaction) Equal(other Transaction) bool {
	if tx.From != other.From || tx.To != other.To || !tx.Amount.Equal(other.Amount) {
		return false
	}
	if len(tx.Data) != len(other.Data) {
		return false
	}
	for i := range tx.Data {
		if tx.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// BalanceDelta carries the final post-block balance of an address
// touched by a block. It is a snapshot, not a difference — see
// spec GLOSSARY.
type BalanceDelta struct {
	Addr   Address
	Amount Uint256
}
