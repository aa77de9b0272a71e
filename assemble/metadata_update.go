package assemble

import (
	"fmt"

	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/metadata"
	"go.uber.org/zap"
)

// updateMetadata implements the §4.5.2 metadata updater table.
func updateMetadata(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, owners OwnerLookup, findMetadataAccount FindMetadataAccountFunc, at Coordinates, logger *zap.Logger) error {
	ix, err := metadata.Decode(instr.Data)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}
	switch ix.Tag {
	case metadata.TagCreateMetadataAccount, metadata.TagCreateMetadataAccountV2:
		key0, err := acctKey(accountKeys, instr, 0)
		if err != nil {
			return err
		}
		if findMetadataAccount(b.MintKey) != key0 {
			return ErrInvalidMetadataCreate
		}
		b.MetadataKey = key0
		b.Glazing = append(b.Glazing, Glazing{
			Uri:        []byte(ix.Uri),
			Creators:   convertCreators(ix.Creators),
			Collection: convertCollection(ix.Collection),
			At:         at,
		})

	case metadata.TagUpdateMetadataAccount, metadata.TagUpdateMetadataAccountV2:
		key0, err := acctKey(accountKeys, instr, 0)
		if err != nil {
			return err
		}
		if b.MetadataKey != key0 {
			return ErrInvalidMetadataUpdate
		}
		if ix.HasData {
			b.Glazing = append(b.Glazing, Glazing{
				Uri:        []byte(ix.Uri),
				Creators:   convertCreators(ix.Creators),
				Collection: convertCollection(ix.Collection),
				At:         at,
			})
		}

	case metadata.TagDeprecatedCreateMasterEdition:
		return createMasterEdition(b, instr, accountKeys, 7)
	case metadata.TagCreateMasterEdition, metadata.TagCreateMasterEditionV3:
		return createMasterEdition(b, instr, accountKeys, 5)

	case metadata.TagMintNewEditionFromMasterEditionViaToken:
		return mintNewEdition(b, instr, accountKeys, ix.Edition, findMetadataAccount, 10)
	case metadata.TagMintNewEditionFromMasterEditionViaVaultProxy:
		return mintNewEdition(b, instr, accountKeys, ix.Edition, findMetadataAccount, 12)
	case metadata.TagDeprecatedMintNewEditionFromMasterEditionViaPrintingToken:
		return mintNewEdition(b, instr, accountKeys, ix.Edition, findMetadataAccount, -1)

	case metadata.TagSignMetadata, metadata.TagRemoveCreatorVerification:
		key0, err := acctKey(accountKeys, instr, 0)
		if err != nil {
			return err
		}
		if b.MetadataKey != key0 {
			return ErrInvalidMetadataVerifyOperation
		}
		creatorKey, err := acctKey(accountKeys, instr, 1)
		if err != nil {
			return err
		}
		b.ApplyCreatorVerification(creatorKey, ix.Tag == metadata.TagSignMetadata, at)

	case metadata.TagVerifyCollection:
		return verifyCollectionAt(b, instr, accountKeys, 3, true, at)

	case metadata.TagUnverifyCollection:
		logger.Warn("UnverifyCollection passes verified=true, preserving the upstream behavior this is a faithful port of",
			zap.String("mint_key", b.MintKey.String()))
		return verifyCollectionAt(b, instr, accountKeys, 3, true, at)

	case metadata.TagSetAndVerifyCollection:
		return verifyCollectionAt(b, instr, accountKeys, 4, true, at)
	}
	return nil
}

func createMasterEdition(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, metadataIdx int) error {
	key, err := acctKey(accountKeys, instr, metadataIdx)
	if err != nil {
		return err
	}
	if b.MetadataKey != key || b.EditionStatus != EditionNone {
		return ErrInvalidMasterEditionCreate
	}
	b.EditionStatus = EditionMaster
	return nil
}

// mintNewEdition implements "mint new edition from master" for all three
// variants. masterIdx is the account index of the master edition/master
// mint account carried in limited_edition; -1 means the deprecated
// printing-token variant, which carries no LimitedEdition per §4.5.2.
func mintNewEdition(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, edition uint64, findMetadataAccount FindMetadataAccountFunc, masterIdx int) error {
	key0, err := acctKey(accountKeys, instr, 0)
	if err != nil {
		return err
	}
	if findMetadataAccount(b.MintKey) != key0 {
		return ErrInvalidMetadataCreate
	}
	b.MetadataKey = key0
	b.EditionStatus = EditionLimited
	if masterIdx < 0 {
		b.LimitedEdition = nil
		return nil
	}
	masterKey, err := acctKey(accountKeys, instr, masterIdx)
	if err != nil {
		return err
	}
	editionNum := int64(edition)
	b.LimitedEdition = &LimitedEdition{MasterKey: masterKey, EditionNum: &editionNum}
	return nil
}

func verifyCollectionAt(b *Bonbon, instr ledger.CompiledInstruction, accountKeys []ledger.Key, collectionIdx int, verified bool, at Coordinates) error {
	key0, err := acctKey(accountKeys, instr, 0)
	if err != nil {
		return err
	}
	if b.MetadataKey != key0 {
		return ErrInvalidMetadataVerifyOperation
	}
	collectionKey, err := acctKey(accountKeys, instr, collectionIdx)
	if err != nil {
		return err
	}
	b.ApplyCollectionVerification(collectionKey, verified, at)
	return nil
}

func convertCreators(in []metadata.Creator) []Creator {
	if in == nil {
		return nil
	}
	out := make([]Creator, len(in))
	for i, c := range in {
		out[i] = Creator{Address: ledger.Key(c.Address), Verified: c.Verified, Share: int16(c.Share)}
	}
	return out
}

func convertCollection(in *metadata.Collection) *Collection {
	if in == nil {
		return nil
	}
	return &Collection{Address: ledger.Key(in.Key), Verified: in.Verified}
}
