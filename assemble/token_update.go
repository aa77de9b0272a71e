package assemble

import (
	"fmt"

	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/token"
	"go.uber.org/zap"
)

// updateToken implements the §4.5.1 token updater table.
func updateToken(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, owners OwnerLookup, _ FindMetadataAccountFunc, _ Coordinates, _ *zap.Logger) error {
	ix, err := token.Decode(instr.Data)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}
	switch ix.Tag {
	case token.TagInitializeMint:
		key, err := acctKey(accountKeys, instr, 0)
		if err != nil {
			return err
		}
		b.MintKey = key

	case token.TagTransfer:
		return setCurrentFromAccount(b, instr, accountKeys, owners, 1)
	case token.TagTransferChecked:
		return setCurrentFromAccount(b, instr, accountKeys, owners, 2)
	case token.TagMintTo, token.TagMintToChecked:
		return setCurrentFromAccount(b, instr, accountKeys, owners, 1)

	case token.TagBurn, token.TagBurnChecked:
		b.CurrentOwner = nil
		b.CurrentAccount = nil

	case token.TagSetAuthority:
		// AuthorityAccountOwner is reserved for future work; left as a
		// no-op to match the upstream behavior this is a faithful port of.
	}
	return nil
}

func setCurrentFromAccount(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, owners OwnerLookup, pos int) error {
	idx, err := acctIndex(instr, pos)
	if err != nil {
		return err
	}
	key, err := acctKey(accountKeys, instr, pos)
	if err != nil {
		return err
	}
	b.CurrentAccount = &key
	if owner, ok := owners[idx]; ok {
		b.CurrentOwner = &owner
	} else {
		b.CurrentOwner = nil
	}
	return nil
}
