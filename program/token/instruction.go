// Package token decodes instructions issued to the SPL token program.
//
// Only the fields the partitioner and assembler actually consume are
// decoded; trailing payload bytes (authority pubkeys, multisig signer
// counts, and so on) are left unread and not validated. This is a decode-only
// view of the program, never a builder.
package token

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// ErrFailedInstructionDeserialization is returned when the instruction data
// does not match the shape expected for its discriminator tag.
var ErrFailedInstructionDeserialization = errors.New("token: failed instruction deserialization")

// Tag identifies a TokenInstruction variant by its wire discriminator.
type Tag uint8

const (
	TagInitializeMint     Tag = 0
	TagInitializeAccount  Tag = 1
	TagInitializeMultisig Tag = 2
	TagTransfer           Tag = 3
	TagApprove            Tag = 4
	TagRevoke             Tag = 5
	TagSetAuthority       Tag = 6
	TagMintTo             Tag = 7
	TagBurn               Tag = 8
	TagCloseAccount       Tag = 9
	TagFreezeAccount      Tag = 10
	TagThawAccount        Tag = 11
	TagTransferChecked    Tag = 12
	TagApproveChecked     Tag = 13
	TagMintToChecked      Tag = 14
	TagBurnChecked        Tag = 15
	TagInitializeAccount2 Tag = 16
	TagSyncNative         Tag = 17
	TagInitializeAccount3 Tag = 18
)

// AuthorityType is the authority-kind argument of SetAuthority.
type AuthorityType uint8

const (
	AuthorityMintTokens   AuthorityType = 0
	AuthorityFreezeAccount AuthorityType = 1
	AuthorityAccountOwner AuthorityType = 2
	AuthorityCloseAccount AuthorityType = 3
)

// Instruction is a decoded TokenInstruction. Which fields are meaningful
// depends on Tag; see the variant table in §4.1/§4.3.1/§4.5.1.
type Instruction struct {
	Tag           Tag
	Decimals      uint8
	Amount        uint64
	AuthorityType AuthorityType
}

// Decode parses the opaque instruction data payload of a compiled
// instruction addressed to the token program.
func Decode(data []byte) (Instruction, error) {
	if len(data) < 1 {
		return Instruction{}, fmt.Errorf("%w: empty instruction data", ErrFailedInstructionDeserialization)
	}
	dec := bin.NewBinDecoder(data)
	tagByte, err := dec.ReadUint8()
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: %s", ErrFailedInstructionDeserialization, err)
	}
	ix := Instruction{Tag: Tag(tagByte)}
	switch ix.Tag {
	case TagInitializeMint:
		ix.Decimals, err = dec.ReadUint8()
	case TagInitializeAccount, TagInitializeMultisig, TagRevoke, TagCloseAccount,
		TagFreezeAccount, TagThawAccount, TagInitializeAccount2, TagSyncNative,
		TagInitializeAccount3:
		// no fields consumed downstream
	case TagTransfer, TagApprove, TagMintTo, TagBurn:
		ix.Amount, err = dec.ReadUint64(bin.LE)
	case TagSetAuthority:
		var at uint8
		at, err = dec.ReadUint8()
		ix.AuthorityType = AuthorityType(at)
	case TagTransferChecked, TagApproveChecked, TagMintToChecked, TagBurnChecked:
		ix.Amount, err = dec.ReadUint64(bin.LE)
		if err == nil {
			ix.Decimals, err = dec.ReadUint8()
		}
	default:
		return Instruction{}, fmt.Errorf("%w: unknown tag %d", ErrFailedInstructionDeserialization, tagByte)
	}
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: %s", ErrFailedInstructionDeserialization, err)
	}
	return ix, nil
}
