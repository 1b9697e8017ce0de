package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// putUvarint appends a LEB128 variable-length unsigned integer to buf,
// used as the length prefix ahead of every encoded collection
// (transaction list, balance delta list). Every collection in this
// codec shares the same prefix format, so round-tripping a nested
// collection never requires out-of-band length information.
func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

// readUvarint reads a LEB128 varint from r, returning an error that
// names the field being decoded on failure.
func readUvarint(r *bytes.Reader, field string) (uint64, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("codec: read length prefix for %s: %w", field, err)
	}
	return v, nil
}
