package metadata

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func borshString(s string) []byte {
	out := make([]byte, 4+len(s))
	binary.LittleEndian.PutUint32(out, uint32(len(s)))
	copy(out[4:], s)
	return out
}

func borshU16(v uint16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, v)
	return out
}

func borshU64(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}

// dataV1Payload builds a Data{name,symbol,uri,seller_fee_basis_points,creators:None}.
func dataV1Payload(uri string) []byte {
	var out []byte
	out = append(out, borshString("name")...)
	out = append(out, borshString("SYM")...)
	out = append(out, borshString(uri)...)
	out = append(out, borshU16(500)...)
	out = append(out, 0) // creators: None
	return out
}

func TestDecodeCreateMetadataAccount(t *testing.T) {
	data := append([]byte{byte(TagCreateMetadataAccount)}, dataV1Payload("ipfs://abc")...)
	ix, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, ix.HasData)
	assert.Equal(t, "ipfs://abc", ix.Uri)
	assert.Nil(t, ix.Collection)
}

func TestDecodeCreateMetadataAccountV2WithCollection(t *testing.T) {
	var payload []byte
	payload = append(payload, dataV1Payload("ipfs://v2")...)
	payload = append(payload, 1) // hasCollection
	payload = append(payload, 1) // verified=true
	payload = append(payload, make([]byte, 32)...)
	payload = append(payload, 0) // hasUses: None
	data := append([]byte{byte(TagCreateMetadataAccountV2)}, payload...)

	ix, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://v2", ix.Uri)
	require.NotNil(t, ix.Collection)
	assert.True(t, ix.Collection.Verified)
}

func TestDecodeUpdateMetadataAccountAbsentData(t *testing.T) {
	data := []byte{byte(TagUpdateMetadataAccount), 0}
	ix, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, ix.HasData)
}

func TestDecodeMintNewEditionFromMasterEditionViaToken(t *testing.T) {
	data := append([]byte{byte(TagMintNewEditionFromMasterEditionViaToken)}, borshU64(7)...)
	ix, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), ix.Edition)
}

func TestDecodeAccountIndexOnlyVariants(t *testing.T) {
	for _, tag := range []Tag{TagSignMetadata, TagVerifyCollection, TagUnverifyCollection,
		TagSetAndVerifyCollection, TagRemoveCreatorVerification, TagPuffMetadata} {
		ix, err := Decode([]byte{byte(tag)})
		require.NoError(t, err)
		assert.Equal(t, tag, ix.Tag)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{250})
	assert.ErrorIs(t, err, ErrFailedInstructionDeserialization)
}

func TestDecodeEmptyData(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrFailedInstructionDeserialization)
}
