// Package metadata decodes instructions issued to the Metaplex
// token-metadata program.
//
// Instruction payloads are Borsh-encoded. As with program/token, only the
// fields the partitioner and assembler consume are decoded; account-index-
// only variants (SignMetadata, VerifyCollection, ...) decode to a bare Tag.
package metadata

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// ErrFailedInstructionDeserialization mirrors program/token's sentinel for
// the metadata program.
var ErrFailedInstructionDeserialization = errors.New("metadata: failed instruction deserialization")

// Tag identifies a MetadataInstruction variant by its Borsh enum ordinal.
type Tag uint8

const (
	TagCreateMetadataAccount                                  Tag = 0
	TagUpdateMetadataAccount                                  Tag = 1
	TagDeprecatedCreateMasterEdition                          Tag = 2
	TagDeprecatedMintNewEditionFromMasterEditionViaPrintingToken Tag = 3
	TagUpdatePrimarySaleHappenedViaToken                      Tag = 4
	TagDeprecatedSetReservationList                           Tag = 5
	TagDeprecatedCreateReservationList                        Tag = 6
	TagSignMetadata                                           Tag = 7
	TagDeprecatedMintPrintingTokensViaToken                   Tag = 8
	TagDeprecatedMintPrintingTokens                           Tag = 9
	TagCreateMasterEdition                                    Tag = 10
	TagMintNewEditionFromMasterEditionViaToken                Tag = 11
	TagConvertMasterEditionV1ToV2                             Tag = 12
	TagMintNewEditionFromMasterEditionViaVaultProxy           Tag = 13
	TagPuffMetadata                                           Tag = 14
	TagUpdateMetadataAccountV2                                Tag = 15
	TagCreateMetadataAccountV2                                Tag = 16
	TagCreateMasterEditionV3                                  Tag = 17
	TagVerifyCollection                                       Tag = 18
	TagUtilize                                                Tag = 19
	TagApproveUseAuthority                                    Tag = 20
	TagRevokeUseAuthority                                     Tag = 21
	TagUnverifyCollection                                     Tag = 22
	TagApproveCollectionAuthority                             Tag = 23
	TagRevokeCollectionAuthority                              Tag = 24
	TagSetAndVerifyCollection                                 Tag = 25
	TagFreezeDelegatedAccount                                 Tag = 26
	TagThawDelegatedAccount                                   Tag = 27
	TagRemoveCreatorVerification                              Tag = 28
)

// Creator mirrors the on-chain Creator struct carried in Data/DataV2.
type Creator struct {
	Address  [32]byte
	Verified bool
	Share    uint8
}

// Collection mirrors the on-chain Collection struct carried in DataV2.
type Collection struct {
	Verified bool
	Key      [32]byte
}

// Instruction is a decoded MetadataInstruction. Only the fields relevant to
// the variant named by Tag are populated.
type Instruction struct {
	Tag Tag

	// CreateMetadataAccount(V2), UpdateMetadataAccount(V2)
	HasData    bool // always true for Create*, may be false for Update* (data omitted)
	Uri        string
	Creators   []Creator
	Collection *Collection // only ever set from the V2 layout

	// MintNewEditionFromMasterEditionVia{Token,VaultProxy}
	Edition uint64
}

// Decode parses the opaque instruction data payload of a compiled
// instruction addressed to the metadata program.
func Decode(data []byte) (Instruction, error) {
	if len(data) < 1 {
		return Instruction{}, fmt.Errorf("%w: empty instruction data", ErrFailedInstructionDeserialization)
	}
	dec := bin.NewBorshDecoder(data)
	tagByte, err := dec.ReadUint8()
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: %s", ErrFailedInstructionDeserialization, err)
	}
	ix := Instruction{Tag: Tag(tagByte)}
	switch ix.Tag {
	case TagCreateMetadataAccount:
		ix.HasData = true
		ix.Uri, ix.Creators, ix.Collection, err = decodeData(dec, false)
	case TagCreateMetadataAccountV2:
		ix.HasData = true
		ix.Uri, ix.Creators, ix.Collection, err = decodeData(dec, true)
	case TagUpdateMetadataAccount:
		ix.HasData, ix.Uri, ix.Creators, ix.Collection, err = decodeOptionalData(dec, false)
	case TagUpdateMetadataAccountV2:
		ix.HasData, ix.Uri, ix.Creators, ix.Collection, err = decodeOptionalData(dec, true)
	case TagMintNewEditionFromMasterEditionViaToken, TagMintNewEditionFromMasterEditionViaVaultProxy:
		ix.Edition, err = dec.ReadUint64(bin.LE)
	case TagDeprecatedCreateMasterEdition, TagCreateMasterEdition, TagCreateMasterEditionV3,
		TagDeprecatedMintNewEditionFromMasterEditionViaPrintingToken,
		TagUpdatePrimarySaleHappenedViaToken, TagDeprecatedSetReservationList,
		TagDeprecatedCreateReservationList, TagSignMetadata,
		TagDeprecatedMintPrintingTokensViaToken, TagDeprecatedMintPrintingTokens,
		TagConvertMasterEditionV1ToV2, TagPuffMetadata, TagVerifyCollection,
		TagUtilize, TagApproveUseAuthority, TagRevokeUseAuthority, TagUnverifyCollection,
		TagApproveCollectionAuthority, TagRevokeCollectionAuthority,
		TagSetAndVerifyCollection, TagFreezeDelegatedAccount, TagThawDelegatedAccount,
		TagRemoveCreatorVerification:
		// account-index-driven variants; no payload fields are consumed downstream
	default:
		return Instruction{}, fmt.Errorf("%w: unknown tag %d", ErrFailedInstructionDeserialization, tagByte)
	}
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: %s", ErrFailedInstructionDeserialization, err)
	}
	return ix, nil
}

// decodeData reads a Data (v1) or DataV2 struct and returns the fields the
// assembler needs: uri, creators, and (v2 only) collection.
func decodeData(dec *bin.Decoder, v2 bool) (uri string, creators []Creator, collection *Collection, err error) {
	if _, err = dec.ReadString(); err != nil { // name
		return
	}
	if _, err = dec.ReadString(); err != nil { // symbol
		return
	}
	if uri, err = dec.ReadString(); err != nil {
		return
	}
	if _, err = dec.ReadUint16(bin.LE); err != nil { // seller_fee_basis_points
		return
	}
	hasCreators, err := dec.ReadUint8()
	if err != nil {
		return
	}
	if hasCreators == 1 {
		if creators, err = decodeCreators(dec); err != nil {
			return
		}
	}
	if !v2 {
		return
	}
	hasCollection, err := dec.ReadUint8()
	if err != nil {
		return
	}
	if hasCollection == 1 {
		var c Collection
		if c, err = decodeCollection(dec); err != nil {
			return
		}
		collection = &c
	}
	hasUses, err := dec.ReadUint8()
	if err != nil {
		return
	}
	if hasUses == 1 {
		if _, err = dec.ReadUint8(); err != nil { // use_method
			return
		}
		if _, err = dec.ReadUint64(bin.LE); err != nil { // remaining
			return
		}
		if _, err = dec.ReadUint64(bin.LE); err != nil { // total
			return
		}
	}
	return
}

// decodeOptionalData reads the Option<Data|DataV2> leading field of an
// UpdateMetadataAccount(V2) instruction. If absent, hasData is false and the
// remaining fields (update_authority, primary_sale_happened, is_mutable) are
// left undecoded since nothing downstream consumes them.
func decodeOptionalData(dec *bin.Decoder, v2 bool) (hasData bool, uri string, creators []Creator, collection *Collection, err error) {
	present, err := dec.ReadUint8()
	if err != nil {
		return
	}
	if present != 1 {
		return false, "", nil, nil, nil
	}
	uri, creators, collection, err = decodeData(dec, v2)
	hasData = err == nil
	return
}

func decodeCreators(dec *bin.Decoder) ([]Creator, error) {
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	out := make([]Creator, n)
	for i := range out {
		addr, err := dec.ReadNBytes(32)
		if err != nil {
			return nil, err
		}
		copy(out[i].Address[:], addr)
		if out[i].Verified, err = dec.ReadBool(); err != nil {
			return nil, err
		}
		if out[i].Share, err = dec.ReadUint8(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeCollection(dec *bin.Decoder) (Collection, error) {
	var c Collection
	verified, err := dec.ReadBool()
	if err != nil {
		return c, err
	}
	key, err := dec.ReadNBytes(32)
	if err != nil {
		return c, err
	}
	c.Verified = verified
	copy(c.Key[:], key)
	return c, nil
}
