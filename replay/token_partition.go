package replay

import (
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/token"
)

// partitionTokenInstruction implements the §4.3.1 token partitioner table.
func partitionTokenInstruction(ctx *instructionContext) (*ledger.Key, error) {
	ix, err := token.Decode(ctx.instruction.Data)
	if err != nil {
		return nil, err
	}
	switch ix.Tag {
	case token.TagInitializeMint:
		if ix.Decimals != 0 {
			return nil, nil
		}
		key, err := ctx.acctKey(0)
		if err != nil {
			return nil, err
		}
		return &key, nil

	case token.TagInitializeAccount, token.TagInitializeAccount2, token.TagInitializeAccount3:
		idx0, err := ctx.acctIndex(0)
		if err != nil {
			return nil, err
		}
		if meta, ok := ctx.balances.Get(idx0); ok {
			if !meta.NFTShaped() {
				return nil, nil
			}
			mint := meta.Mint
			return &mint, nil
		}
		mintKey, err := ctx.acctKey(1)
		if err != nil {
			return nil, err
		}
		ctx.balances.PushTransient(idx0, mintKey)
		return nil, nil

	case token.TagTransfer, token.TagApprove, token.TagBurn:
		if ix.Amount > 1 {
			return nil, nil
		}
		return ctx.mintOf(0)

	case token.TagMintTo:
		if ix.Amount > 1 {
			return nil, nil
		}
		return ctx.mintOf(1)

	case token.TagRevoke, token.TagFreezeAccount, token.TagThawAccount:
		return ctx.mintOf(0)

	case token.TagSetAuthority:
		if ix.AuthorityType == token.AuthorityMintTokens {
			return nil, nil
		}
		return ctx.mintOf(0)

	case token.TagTransferChecked, token.TagApproveChecked, token.TagBurnChecked:
		if ix.Decimals != 0 || ix.Amount > 1 {
			return nil, nil
		}
		return ctx.mintOf(0)

	case token.TagMintToChecked:
		if ix.Decimals != 0 || ix.Amount > 1 {
			return nil, nil
		}
		return ctx.mintOf(1)

	case token.TagCloseAccount:
		idx0, err := ctx.acctIndex(0)
		if err != nil {
			return nil, err
		}
		ctx.balances.RemoveTransient(idx0)
		return nil, nil

	case token.TagInitializeMultisig, token.TagSyncNative:
		return nil, nil

	default:
		return nil, nil
	}
}
