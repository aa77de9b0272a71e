package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInitializeMint(t *testing.T) {
	ix, err := Decode([]byte{byte(TagInitializeMint), 0})
	require.NoError(t, err)
	assert.Equal(t, TagInitializeMint, ix.Tag)
	assert.Equal(t, uint8(0), ix.Decimals)
}

func TestDecodeTransferReadsAmountLE(t *testing.T) {
	data := []byte{byte(TagTransfer), 1, 0, 0, 0, 0, 0, 0, 0}
	ix, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TagTransfer, ix.Tag)
	assert.Equal(t, uint64(1), ix.Amount)
}

func TestDecodeTransferCheckedReadsAmountThenDecimals(t *testing.T) {
	data := []byte{byte(TagTransferChecked), 5, 0, 0, 0, 0, 0, 0, 0, 9}
	ix, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), ix.Amount)
	assert.Equal(t, uint8(9), ix.Decimals)
}

func TestDecodeSetAuthority(t *testing.T) {
	ix, err := Decode([]byte{byte(TagSetAuthority), byte(AuthorityFreezeAccount)})
	require.NoError(t, err)
	assert.Equal(t, AuthorityFreezeAccount, ix.AuthorityType)
}

func TestDecodeAccountIndexOnlyVariants(t *testing.T) {
	for _, tag := range []Tag{TagInitializeAccount, TagInitializeMultisig, TagRevoke, TagCloseAccount,
		TagFreezeAccount, TagThawAccount, TagInitializeAccount2, TagSyncNative, TagInitializeAccount3} {
		ix, err := Decode([]byte{byte(tag)})
		require.NoError(t, err)
		assert.Equal(t, tag, ix.Tag)
	}
}

func TestDecodeEmptyData(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrFailedInstructionDeserialization)
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{200})
	assert.ErrorIs(t, err, ErrFailedInstructionDeserialization)
}

func TestDecodeTruncatedAmount(t *testing.T) {
	_, err := Decode([]byte{byte(TagTransfer), 1, 2})
	assert.ErrorIs(t, err, ErrFailedInstructionDeserialization)
}
