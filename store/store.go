// Package store defines the sink/source interface the §6 CLI commands write
// to and read from, and the five persisted record shapes. The embedded-KV
// implementation lives in store/badgerstore; this package names the
// contract independent of any backing engine.
package store

import (
	"github.com/cielu/bonbon/assemble"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/orchestrate"
	"github.com/cielu/bonbon/replay"
)

// TransactionRecord is the `transactions` record shape of §6.
type TransactionRecord struct {
	Slot        int64
	BlockIndex  int64
	Signature   [64]byte
	Transaction []byte // length-prefixed serialized ledger.Transaction
}

// PartitionRecord is the `partitions` record shape of §6, paired with the
// `account_keys` side table row it was produced alongside.
type PartitionRecord struct {
	PartitionKey ledger.Key
	ProgramKey   ledger.Key
	Slot         int64
	BlockIndex   int64
	OuterIndex   int64
	InnerIndex   *int64
	Signature    [64]byte
	Instruction  ledger.CompiledInstruction
}

// AccountKeysRecord is the `account_keys(signature -> keys[])` side table.
type AccountKeysRecord struct {
	Signature [64]byte
	Keys      []ledger.Key
}

// BonbonRecord is the `bonbons` record shape of §6.
type BonbonRecord struct {
	MintKey        ledger.Key
	MetadataKey    ledger.Key
	CurrentOwner   *ledger.Key
	CurrentAccount *ledger.Key
	EditionStatus  assemble.EditionStatus
	LimitedEdition *assemble.LimitedEdition
}

// GlazingRecord is one row of the `glazings` record shape of §6: one row per
// element of bonbon.glazing, tagged with its originating coordinates.
type GlazingRecord struct {
	MintKey    ledger.Key
	Slot       int64
	BlockIndex int64
	OuterIndex int64
	InnerIndex *int64
	Glazing    assemble.Glazing
}

// Store is the sink the fetch/partition/reassemble commands write to and
// read from. A concrete engine (store/badgerstore, or any other
// embedded/remote KV) implements it.
type Store interface {
	PutTransaction(rec TransactionRecord) error
	TransactionsInOrder(visit func(TransactionRecord) error) error

	PutPartition(rec PartitionRecord) error
	PutAccountKeys(rec AccountKeysRecord) error
	PartitionsByKey(key ledger.Key) ([]PartitionRecord, error)
	AccountKeysFor(signature [64]byte) ([]ledger.Key, error)
	DistinctMintPartitionKeys() ([]ledger.Key, error)

	PutBonbon(rec BonbonRecord) error
	PutGlazing(rec GlazingRecord) error

	Close() error
}

// replayInstructionFor reconstitutes a replay.PartitionedInstruction from a
// stored PartitionRecord, the shape orchestrate.StoredInstruction expects.
func replayInstructionFor(rec PartitionRecord) replay.PartitionedInstruction {
	return replay.PartitionedInstruction{
		Instruction:  rec.Instruction,
		PartitionKey: rec.PartitionKey,
		ProgramKey:   rec.ProgramKey,
		OuterIndex:   rec.OuterIndex,
		InnerIndex:   rec.InnerIndex,
		Signature:    rec.Signature,
		Slot:         uint64(rec.Slot),
		BlockIndex:   uint64(rec.BlockIndex),
	}
}

// OrchestratorSource adapts a Store into orchestrate.PartitionSource,
// reconstructing each row's account-key list from the account_keys side
// table. Each row's owner lookup is always empty: no stored record carries a
// token account's owner, so no owner is resolved for any row.
type OrchestratorSource struct {
	Store Store
}

// LoadPartition implements orchestrate.PartitionSource.
func (s OrchestratorSource) LoadPartition(key ledger.Key) ([]orchestrate.StoredInstruction, error) {
	recs, err := s.Store.PartitionsByKey(key)
	if err != nil {
		return nil, err
	}
	out := make([]orchestrate.StoredInstruction, 0, len(recs))
	for _, rec := range recs {
		keys, err := s.Store.AccountKeysFor(rec.Signature)
		if err != nil {
			return nil, err
		}
		out = append(out, orchestrate.StoredInstruction{
			Instruction: replayInstructionFor(rec),
			AccountKeys: keys,
			Owners:      assemble.OwnerLookup{},
		})
	}
	return out, nil
}

// DistinctMintKeys implements orchestrate.PartitionSource.
func (s OrchestratorSource) DistinctMintKeys() ([]ledger.Key, error) {
	return s.Store.DistinctMintPartitionKeys()
}
