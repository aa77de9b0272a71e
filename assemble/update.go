package assemble

import (
	"github.com/cielu/bonbon/ledger"
	solana "github.com/cielu/bonbon"
	"go.uber.org/zap"
)

type updaterFunc func(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, owners OwnerLookup, findMetadataAccount FindMetadataAccountFunc, at Coordinates, logger *zap.Logger) error

// programUpdaters is the flat registry of §4.5's "resolves program ->
// updater; if unknown, no-op".
var programUpdaters = []struct {
	programID ledger.Key
	fn        updaterFunc
}{
	{solana.TokenProgramID, updateToken},
	{solana.MetadataProgramID, updateMetadata},
}

// Update is Bonbon.update(instruction, account_keys, owners, updaters) of
// §4.5: resolve the instruction's program to an updater and apply it. at
// tags any Glazing the updater appends with the instruction's position in
// global execution order. An unrecognized program is a silent no-op.
// logger may be nil.
func (b *Bonbon) Update(instr ledger.CompiledInstruction, accountKeys []ledger.Key, owners OwnerLookup, findMetadataAccount FindMetadataAccountFunc, at Coordinates, logger *zap.Logger) error {
	if int(instr.ProgramIDIndex) >= len(accountKeys) {
		return ErrBadAccountKeyIndex
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	programID := accountKeys[instr.ProgramIDIndex]
	for _, u := range programUpdaters {
		if u.programID == programID {
			return u.fn(b, instr, accountKeys, owners, findMetadataAccount, at, logger)
		}
	}
	return nil
}
