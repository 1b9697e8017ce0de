/*
Package export implements the read-only JSON table dump behind the
db-utils CLI subcommand: block rows as {id, hex-encoded block bytes},
nonce rows as {address, nonce}, and balance rows as {address, decimal
balance}, one JSON array per requested table.
*/
package export
