// Package core contains the fundamental data structures of the PoT network:
// the Users who transact, and the Transactions that move coin between them.
// Blocks and the Chain that aggregates them live in internal/blockchain,
// which imports this package.
package core
