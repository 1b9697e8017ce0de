// Package export implements the db-utils JSON table dump: a read-only
// snapshot of the block, nonce, and balance tables, keyed by table
// name, suitable for offline inspection or backup verification.
package export

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cuemby/warrenchain/pkg/codec"
	"github.com/cuemby/warrenchain/pkg/storage"
	"github.com/cuemby/warrenchain/pkg/types"
)

// BlockEntry is one row of the exported block table.
type BlockEntry struct {
	ID    uint64 `json:"id"`
	Block string `json:"block"`
}

// NonceEntry is one row of the exported nonce table.
type NonceEntry struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
}

// BalanceEntry is one row of the exported balance table.
type BalanceEntry struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// TableName enumerates the exportable tables by their CLI name.
type TableName string

const (
	TableBlock   TableName = "block"
	TableNonce   TableName = "nonce"
	TableBalance TableName = "balance"
)

// ErrUnknownTable is returned when a requested table name doesn't
// match one of TableBlock, TableNonce, or TableBalance.
type ErrUnknownTable struct {
	Name string
}

func (e *ErrUnknownTable) Error() string {
	return fmt.Sprintf("export: unknown table %q", e.Name)
}

// ParseTableNames splits a comma-separated --tables flag value into
// TableNames, trimming whitespace around each entry.
func ParseTableNames(csv string) []TableName {
	parts := strings.Split(csv, ",")
	out := make([]TableName, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, TableName(p))
	}
	return out
}

// Export reads tableNames out of store and renders the result as
// pretty-printed JSON, one top-level key per table. Keys are emitted
// in alphabetical order, not in the order requested.
func Export(store *storage.Manager, tableNames []TableName) ([]byte, error) {
	entries := make(map[string]any, len(tableNames))

	for _, name := range tableNames {
		switch name {
		case TableBlock:
			rows, err := exportBlocks(store)
			if err != nil {
				return nil, err
			}
			entries[string(TableBlock)] = rows

		case TableNonce:
			rows, err := exportNonces(store)
			if err != nil {
				return nil, err
			}
			entries[string(TableNonce)] = rows

		case TableBalance:
			rows, err := exportBalances(store)
			if err != nil {
				return nil, err
			}
			entries[string(TableBalance)] = rows

		default:
			return nil, &ErrUnknownTable{Name: string(name)}
		}
	}

	return json.MarshalIndent(entries, "", "  ")
}

func exportBlocks(store *storage.Manager) ([]BlockEntry, error) {
	rows := make([]BlockEntry, 0)
	err := store.BlockScan(func(id uint64, b types.Block) error {
		rows = append(rows, BlockEntry{
			ID:    id,
			Block: hex.EncodeToString(codec.MarshalBlock(b)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func exportNonces(store *storage.Manager) ([]NonceEntry, error) {
	rows := make([]NonceEntry, 0)
	err := store.Nonces().Scan(func(addr types.Address, nonce uint64) error {
		rows = append(rows, NonceEntry{Address: addr.String(), Nonce: nonce})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func exportBalances(store *storage.Manager) ([]BalanceEntry, error) {
	rows := make([]BalanceEntry, 0)
	err := store.Balances().Scan(func(addr types.Address, bal types.Uint256) error {
		rows = append(rows, BalanceEntry{Address: addr.String(), Balance: bal.String()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
