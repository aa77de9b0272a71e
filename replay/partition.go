package replay

import "github.com/cielu/bonbon/ledger"

// PartitionedInstruction is one instruction the partitioner decided belongs
// to a particular NFT, tagged with its position in global execution order.
type PartitionedInstruction struct {
	Instruction  ledger.CompiledInstruction
	PartitionKey ledger.Key
	ProgramKey   ledger.Key
	OuterIndex   int64
	InnerIndex   *int64 // nil sorts last among entries with equal OuterIndex
	Signature    [64]byte
	Slot         uint64
	BlockIndex   uint64
}

// instructionContext is the per-instruction view a program partitioner
// operates over: the instruction itself, the transaction's account key
// list, and the shared balance index (whose transient overlay the token
// partitioner mutates).
type instructionContext struct {
	instruction ledger.CompiledInstruction
	accountKeys []ledger.Key
	balances    *BalanceIndex
}

// acctKey resolves instruction.account_indices[i] to its account key.
func (c *instructionContext) acctKey(i int) (ledger.Key, error) {
	idx, err := c.acctIndex(i)
	if err != nil {
		return ledger.Key{}, err
	}
	if int(idx) >= len(c.accountKeys) {
		return ledger.Key{}, ErrBadAccountKeyIndex
	}
	return c.accountKeys[idx], nil
}

// acctIndex returns the raw account_index (position in account_keys) named
// by instruction.account_indices[i].
func (c *instructionContext) acctIndex(i int) (uint8, error) {
	if i < 0 || i >= len(c.instruction.Accounts) {
		return 0, ErrBadAccountKeyIndex
	}
	return uint8(c.instruction.Accounts[i]), nil
}

// mintOf resolves account_indices[i] to the mint of an NFT-shaped token
// balance, or nil if the balance fails the NFT-shape heuristic. A missing
// TokenMeta is always an error here (unlike InitializeAccount, which
// installs one on demand).
func (c *instructionContext) mintOf(i int) (*ledger.Key, error) {
	idx, err := c.acctIndex(i)
	if err != nil {
		return nil, err
	}
	meta, ok := c.balances.Get(idx)
	if !ok {
		return nil, ErrBadTokenMetaAccountIndex
	}
	if !meta.NFTShaped() {
		return nil, nil
	}
	mint := meta.Mint
	return &mint, nil
}

type partitionerFunc func(ctx *instructionContext) (*ledger.Key, error)

// programPartitioners is the flat, deterministically ordered dispatch table
// of §4.3's "registry of { program_id -> partitioner_fn }". Linear scan is
// fine at this size and keeps the dispatch order stable.
var programPartitioners = []struct {
	programID ledger.Key
	fn        partitionerFunc
}{
	{tokenProgramID, partitionTokenInstruction},
	{metadataProgramID, partitionMetadataInstruction},
}

// PartitionInstruction is the public partition_instruction(ctx) operation
// of §4.3: classify one compiled instruction and, if it belongs to an NFT,
// return its partition key.
func PartitionInstruction(instr ledger.CompiledInstruction, accountKeys []ledger.Key, balances *BalanceIndex) (*ledger.Key, error) {
	if int(instr.ProgramIDIndex) >= len(accountKeys) {
		return nil, ErrBadAccountKeyIndex
	}
	programID := accountKeys[instr.ProgramIDIndex]
	var fn partitionerFunc
	for _, p := range programPartitioners {
		if p.programID == programID {
			fn = p.fn
			break
		}
	}
	if fn == nil {
		return nil, nil
	}
	ctx := &instructionContext{instruction: instr, accountKeys: accountKeys, balances: balances}
	return fn(ctx)
}
