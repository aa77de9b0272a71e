// Package orchestrate drives the assembler across a store of partitioned
// instructions, implementing §4.6's Replay orchestrator: group by mint,
// derive each mint's metadata key, order its instructions, and assemble one
// Bonbon per mint.
package orchestrate

import (
	"sort"

	"github.com/cielu/bonbon/assemble"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/replay"
	"go.uber.org/zap"
)

// FindMetadataAccount derives a mint's canonical metadata account. Supplied
// by the caller; this package treats it as a pure function.
type FindMetadataAccount func(mint ledger.Key) ledger.Key

// PartitionSource yields every partitioned instruction recorded for a given
// partition key, and the account-key list each instruction's indices are
// relative to. Concrete implementations live in store.
type PartitionSource interface {
	LoadPartition(key ledger.Key) ([]StoredInstruction, error)
	DistinctMintKeys() ([]ledger.Key, error)
}

// StoredInstruction is one row of the §6 `partitions` record shape, reunited
// with the account-key list its instruction's indices are relative to.
type StoredInstruction struct {
	Instruction replay.PartitionedInstruction
	AccountKeys []ledger.Key
	Owners      assemble.OwnerLookup
}

// Run implements §4.6: for each distinct mint partition key, derive its
// metadata key, merge the mint and metadata partitions, order them by
// (slot, block_index, outer_index, inner_index) with nil inner_index
// sorting last, and drive Bonbon.Update across the merged sequence. A
// Bonbon whose update fails is logged and skipped; the run continues with
// the remaining mints.
func Run(src PartitionSource, findMetadataAccount FindMetadataAccount, logger *zap.Logger) (map[ledger.Key]*assemble.Bonbon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mints, err := src.DistinctMintKeys()
	if err != nil {
		return nil, err
	}

	out := make(map[ledger.Key]*assemble.Bonbon, len(mints))
	for _, mint := range mints {
		metadataKey := findMetadataAccount(mint)

		mintRows, err := src.LoadPartition(mint)
		if err != nil {
			logger.Warn("orchestrate: failed to load mint partition", zap.String("mint_key", mint.String()), zap.Error(err))
			continue
		}
		metaRows, err := src.LoadPartition(metadataKey)
		if err != nil {
			logger.Warn("orchestrate: failed to load metadata partition", zap.String("mint_key", mint.String()), zap.Error(err))
			continue
		}

		rows := append(append([]StoredInstruction{}, mintRows...), metaRows...)
		sortRows(rows)

		b := assemble.New()
		var updateErr error
		for _, row := range rows {
			at := assemble.Coordinates{
				Slot:       row.Instruction.Slot,
				BlockIndex: row.Instruction.BlockIndex,
				OuterIndex: row.Instruction.OuterIndex,
				InnerIndex: row.Instruction.InnerIndex,
			}
			err := b.Update(row.Instruction.Instruction, row.AccountKeys, row.Owners, assemble.FindMetadataAccountFunc(findMetadataAccount), at, logger)
			if err != nil {
				updateErr = err
				break
			}
		}
		if updateErr != nil {
			logger.Warn("orchestrate: assembler invariant error", zap.String("mint_key", mint.String()), zap.Error(updateErr))
			continue
		}
		out[mint] = b
	}
	return out, nil
}

// sortRows implements the total order of §5: (slot, block_index,
// outer_index, inner_index), nil inner_index sorting last.
func sortRows(rows []StoredInstruction) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Instruction, rows[j].Instruction
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		if a.BlockIndex != b.BlockIndex {
			return a.BlockIndex < b.BlockIndex
		}
		if a.OuterIndex != b.OuterIndex {
			return a.OuterIndex < b.OuterIndex
		}
		if a.InnerIndex == nil {
			return false
		}
		if b.InnerIndex == nil {
			return true
		}
		return *a.InnerIndex < *b.InnerIndex
	})
}
