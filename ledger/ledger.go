// Package ledger defines the wire-level shapes this module consumes from an
// external blockchain data source. Fetching, decoding from wire bytes, and
// persisting these values is outside this module's scope; ledger only
// names the shapes the replay engine is handed.
package ledger

import (
	"context"

	solana "github.com/cielu/bonbon"
)

// Key is a 32-byte opaque chain identifier: a mint, an account, a program.
type Key = solana.PublicKey

// CompiledInstruction is a single instruction inside a Transaction's message
// or inner-instruction list.
type CompiledInstruction = solana.CompiledInstruction

// InnerInstructionGroup is the set of CPI instructions that ran during the
// outer instruction at Index.
type InnerInstructionGroup struct {
	Index        uint8
	Instructions []CompiledInstruction
}

// TokenBalance is one row of pre_token_balances or post_token_balances.
type TokenBalance struct {
	AccountIndex uint8
	Mint         Key
	Decimals     uint8
	Amount       string // decimal string, as the chain reports it
}

// Status is the execution-result metadata of a transaction.
type Status struct {
	Failed            bool
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
	InnerInstructions []InnerInstructionGroup
}

// Message is the instruction-bearing body of a Transaction.
type Message struct {
	AccountKeys       []Key
	OuterInstructions []CompiledInstruction
}

// Transaction is the decoded, already-parsed transaction value this module
// assumes as input; decoding it from wire bytes is out of scope.
type Transaction struct {
	Message   Message
	Status    *Status // nil means "no status meta was recorded for this transaction"
	Signature [64]byte
	Slot      uint64
	BlockIndex uint64
}

// Source is a confirmed-block iterator over a remote ledger. A concrete
// implementation (an RPC client, a BigTable export reader, ...) lives
// outside this module; this interface is the contract fetch-side code is
// written against.
type Source interface {
	// FetchRange yields every transaction in slots [start, end), calling
	// visit once per transaction in (slot, block_index) order. Returning a
	// non-nil error from visit stops iteration.
	FetchRange(ctx context.Context, start, end uint64, visit func(Transaction) error) error
}
