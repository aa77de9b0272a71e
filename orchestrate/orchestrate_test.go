package orchestrate

import (
	"testing"

	solana "github.com/cielu/bonbon"
	"github.com/cielu/bonbon/assemble"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/token"
	"github.com/cielu/bonbon/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) ledger.Key {
	var k ledger.Key
	k[0] = b
	return k
}

type fakeSource struct {
	byKey map[ledger.Key][]StoredInstruction
	mints []ledger.Key
}

func (f fakeSource) LoadPartition(key ledger.Key) ([]StoredInstruction, error) {
	return f.byKey[key], nil
}

func (f fakeSource) DistinctMintKeys() ([]ledger.Key, error) {
	return f.mints, nil
}

func TestRunAssemblesOneBonbonPerMint(t *testing.T) {
	mint := testKey(1)
	metadataKey := testKey(2)
	tokenAccount := testKey(3)

	accountKeys := []ledger.Key{mint, metadataKey, tokenAccount, solana.TokenProgramID}

	initMint := replay.PartitionedInstruction{
		Instruction: ledger.CompiledInstruction{ProgramIDIndex: 3, Accounts: []uint16{0}, Data: []byte{byte(token.TagInitializeMint), 0}},
		Slot:        1, BlockIndex: 0, OuterIndex: 0,
	}
	src := fakeSource{
		byKey: map[ledger.Key][]StoredInstruction{
			mint: {{Instruction: initMint, AccountKeys: accountKeys, Owners: assemble.OwnerLookup{}}},
		},
		mints: []ledger.Key{mint},
	}

	findMetadata := func(m ledger.Key) ledger.Key { return metadataKey }
	out, err := Run(src, findMetadata, nil)
	require.NoError(t, err)
	require.Contains(t, out, mint)
	assert.Equal(t, mint, out[mint].MintKey)
}

func TestRunSkipsMintOnAssemblerError(t *testing.T) {
	mint := testKey(9)
	accountKeys := []ledger.Key{mint, solana.TokenProgramID}
	bad := replay.PartitionedInstruction{
		Instruction: ledger.CompiledInstruction{ProgramIDIndex: 1, Accounts: []uint16{0}, Data: []byte{255}}, // undecodable
	}
	src := fakeSource{
		byKey: map[ledger.Key][]StoredInstruction{
			mint: {{Instruction: bad, AccountKeys: accountKeys, Owners: assemble.OwnerLookup{}}},
		},
		mints: []ledger.Key{mint},
	}
	out, err := Run(src, func(m ledger.Key) ledger.Key { return m }, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, mint)
}

func TestSortRowsOrdersByCoordinatesNilInnerLast(t *testing.T) {
	zero := int64(0)
	rows := []StoredInstruction{
		{Instruction: replay.PartitionedInstruction{Slot: 1, OuterIndex: 0, InnerIndex: nil}},
		{Instruction: replay.PartitionedInstruction{Slot: 1, OuterIndex: 0, InnerIndex: &zero}},
		{Instruction: replay.PartitionedInstruction{Slot: 0, OuterIndex: 5}},
	}
	sortRows(rows)
	assert.Equal(t, uint64(0), rows[0].Instruction.Slot)
	assert.NotNil(t, rows[1].Instruction.InnerIndex)
	assert.Nil(t, rows[2].Instruction.InnerIndex)
}
