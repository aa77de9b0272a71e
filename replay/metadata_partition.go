package replay

import (
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/metadata"
)

// partitionMetadataInstruction implements the §4.3.2 metadata partitioner
// table: the partition key is always the account at a variant-fixed index.
//
// DeprecatedMintNewEditionFromMasterEditionViaPrintingToken's master-account
// index historically shifted between on-chain layouts (10 vs. 11, probed
// via accts[11] against the token program id); the assembler never needs
// that master key for this deprecated variant (limited_edition stays nil,
// see assemble/metadata_update.go), so the probe has no observable effect
// here and is not reproduced.
func partitionMetadataInstruction(ctx *instructionContext) (*ledger.Key, error) {
	ix, err := metadata.Decode(ctx.instruction.Data)
	if err != nil {
		return nil, err
	}
	switch ix.Tag {
	case metadata.TagCreateMetadataAccount, metadata.TagCreateMetadataAccountV2,
		metadata.TagUpdateMetadataAccount, metadata.TagUpdateMetadataAccountV2,
		metadata.TagSignMetadata, metadata.TagRemoveCreatorVerification,
		metadata.TagVerifyCollection, metadata.TagUnverifyCollection,
		metadata.TagSetAndVerifyCollection, metadata.TagUpdatePrimarySaleHappenedViaToken,
		metadata.TagPuffMetadata, metadata.TagUtilize:
		return ctx.atIndex(0)

	case metadata.TagDeprecatedCreateMasterEdition:
		return ctx.atIndex(7)

	case metadata.TagCreateMasterEdition, metadata.TagCreateMasterEditionV3:
		return ctx.atIndex(5)

	case metadata.TagMintNewEditionFromMasterEditionViaToken,
		metadata.TagMintNewEditionFromMasterEditionViaVaultProxy,
		metadata.TagDeprecatedMintNewEditionFromMasterEditionViaPrintingToken:
		return ctx.atIndex(0)

	case metadata.TagDeprecatedCreateReservationList, metadata.TagDeprecatedMintPrintingTokensViaToken,
		metadata.TagApproveUseAuthority, metadata.TagRevokeUseAuthority:
		return ctx.atIndex(5)

	case metadata.TagDeprecatedMintPrintingTokens, metadata.TagRevokeCollectionAuthority:
		return ctx.atIndex(3)

	case metadata.TagApproveCollectionAuthority:
		return ctx.atIndex(4)

	case metadata.TagDeprecatedSetReservationList, metadata.TagConvertMasterEditionV1ToV2,
		metadata.TagFreezeDelegatedAccount, metadata.TagThawDelegatedAccount:
		return nil, nil

	default:
		return nil, nil
	}
}

func (c *instructionContext) atIndex(i int) (*ledger.Key, error) {
	key, err := c.acctKey(i)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
