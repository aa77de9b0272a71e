package replay

import "github.com/cielu/bonbon/ledger"

// PartitionTransaction implements the §4.4 transaction partitioning driver.
//
// Inner instructions of outer index o are emitted before the outer
// instruction at o — this ordering is mandatory, modeling CPI instructions
// executing during the outer one. tx.Status.InnerInstructions must already
// be sorted by Index ascending, as the ledger source is specified to
// deliver it.
func PartitionTransaction(tx ledger.Transaction) ([]PartitionedInstruction, error) {
	if tx.Status == nil {
		return nil, ErrMissingTransactionStatusMeta
	}
	if tx.Status.Failed {
		return nil, nil
	}

	balances := NewBalanceIndex(tx.Status.PreTokenBalances, tx.Status.PostTokenBalances)
	accountKeys := tx.Message.AccountKeys

	var out []PartitionedInstruction
	innerGroups := tx.Status.InnerInstructions
	innerCursor := 0

	emit := func(instr ledger.CompiledInstruction, outerIndex int64, innerIndex *int64) error {
		if int(instr.ProgramIDIndex) >= len(accountKeys) {
			return ErrBadAccountKeyIndex
		}
		key, err := PartitionInstruction(instr, accountKeys, balances)
		if err != nil {
			return err
		}
		if key == nil {
			return nil
		}
		out = append(out, PartitionedInstruction{
			Instruction:  instr,
			PartitionKey: *key,
			ProgramKey:   accountKeys[instr.ProgramIDIndex],
			OuterIndex:   outerIndex,
			InnerIndex:   innerIndex,
			Signature:    tx.Signature,
			Slot:         tx.Slot,
			BlockIndex:   tx.BlockIndex,
		})
		return nil
	}

	for o, outer := range tx.Message.OuterInstructions {
		outerIndex := int64(o)
		for innerCursor < len(innerGroups) && int64(innerGroups[innerCursor].Index) == outerIndex {
			group := innerGroups[innerCursor]
			for i, inner := range group.Instructions {
				innerIdx := int64(i)
				if err := emit(inner, outerIndex, &innerIdx); err != nil {
					return nil, err
				}
			}
			innerCursor++
		}
		if err := emit(outer, outerIndex, nil); err != nil {
			return nil, err
		}
	}

	if !balances.TransientEmpty() {
		return nil, ErrFailedTransientTokenAccountMatching
	}
	return out, nil
}
