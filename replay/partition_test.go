package replay

import (
	"encoding/binary"
	"testing"

	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountKeysWithPrograms() []ledger.Key {
	keys := make([]ledger.Key, 4)
	keys[0] = key(10) // mint account
	keys[1] = key(11) // token account
	keys[2] = tokenProgramID
	keys[3] = metadataProgramID
	return keys
}

func le64(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}

func TestPartitionInstructionInitializeMintNFT(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{0},
		Data:           []byte{byte(token.TagInitializeMint), 0},
	}
	balances := NewBalanceIndex(nil, nil)
	pk, err := PartitionInstruction(instr, accountKeys, balances)
	require.NoError(t, err)
	require.NotNil(t, pk)
	assert.Equal(t, accountKeys[0], *pk)
}

func TestPartitionInstructionInitializeMintFungibleIgnored(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{0},
		Data:           []byte{byte(token.TagInitializeMint), 9},
	}
	pk, err := PartitionInstruction(instr, accountKeys, NewBalanceIndex(nil, nil))
	require.NoError(t, err)
	assert.Nil(t, pk)
}

func TestPartitionInstructionTransferAboveOneIgnored(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	mint := key(99)
	balances := NewBalanceIndex([]ledger.TokenBalance{{AccountIndex: 1, Mint: mint, Decimals: 0, Amount: "1"}}, nil)
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1},
		Data:           append([]byte{byte(token.TagTransfer)}, le64(2)...),
	}
	pk, err := PartitionInstruction(instr, accountKeys, balances)
	require.NoError(t, err)
	assert.Nil(t, pk)
}

func TestPartitionInstructionTransferNFT(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	mint := key(99)
	balances := NewBalanceIndex([]ledger.TokenBalance{{AccountIndex: 1, Mint: mint, Decimals: 0, Amount: "1"}}, nil)
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1},
		Data:           append([]byte{byte(token.TagTransfer)}, le64(1)...),
	}
	pk, err := PartitionInstruction(instr, accountKeys, balances)
	require.NoError(t, err)
	require.NotNil(t, pk)
	assert.Equal(t, mint, *pk)
}

func TestPartitionInstructionInitializeAccountPushesTransient(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	balances := NewBalanceIndex(nil, nil)
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1, 0},
		Data:           []byte{byte(token.TagInitializeAccount)},
	}
	pk, err := PartitionInstruction(instr, accountKeys, balances)
	require.NoError(t, err)
	assert.Nil(t, pk)
	assert.False(t, balances.TransientEmpty())
}

func TestPartitionInstructionCloseAccountDrainsTransient(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	balances := NewBalanceIndex(nil, nil)
	balances.PushTransient(1, accountKeys[0])
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1},
		Data:           []byte{byte(token.TagCloseAccount)},
	}
	_, err := PartitionInstruction(instr, accountKeys, balances)
	require.NoError(t, err)
	assert.True(t, balances.TransientEmpty())
}

func TestPartitionInstructionUnknownProgramIgnored(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 0, // not a registered program id
		Accounts:       []uint16{0},
		Data:           []byte{0},
	}
	pk, err := PartitionInstruction(instr, accountKeys, NewBalanceIndex(nil, nil))
	require.NoError(t, err)
	assert.Nil(t, pk)
}

func TestPartitionInstructionBadProgramIndex(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	instr := ledger.CompiledInstruction{ProgramIDIndex: 50, Accounts: []uint16{0}}
	_, err := PartitionInstruction(instr, accountKeys, NewBalanceIndex(nil, nil))
	assert.ErrorIs(t, err, ErrBadAccountKeyIndex)
}
