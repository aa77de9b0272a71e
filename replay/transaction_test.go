package replay

import (
	"testing"

	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/program/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionTransactionMissingStatus(t *testing.T) {
	_, err := PartitionTransaction(ledger.Transaction{})
	assert.ErrorIs(t, err, ErrMissingTransactionStatusMeta)
}

func TestPartitionTransactionFailedIsSkippedNotErrored(t *testing.T) {
	out, err := PartitionTransaction(ledger.Transaction{Status: &ledger.Status{Failed: true}})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestPartitionTransactionOrdersInnerBeforeOuter(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	mint := key(77)
	balances := []ledger.TokenBalance{{AccountIndex: 1, Mint: mint, Decimals: 0, Amount: "1"}}

	outer := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1},
		Data:           append([]byte{byte(token.TagTransfer)}, le64(1)...),
	}
	inner := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1},
		Data:           append([]byte{byte(token.TagRevoke)}),
	}

	tx := ledger.Transaction{
		Message: ledger.Message{
			AccountKeys:       accountKeys,
			OuterInstructions: []ledger.CompiledInstruction{outer},
		},
		Status: &ledger.Status{
			PreTokenBalances: balances,
			InnerInstructions: []ledger.InnerInstructionGroup{
				{Index: 0, Instructions: []ledger.CompiledInstruction{inner}},
			},
		},
	}

	out, err := PartitionTransaction(tx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.NotNil(t, out[0].InnerIndex, "inner instruction emitted first")
	assert.Nil(t, out[1].InnerIndex, "outer instruction emitted second")
}

func TestPartitionTransactionUnmatchedTransientErrors(t *testing.T) {
	accountKeys := accountKeysWithPrograms()
	instr := ledger.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1, 0},
		Data:           []byte{byte(token.TagInitializeAccount)},
	}
	tx := ledger.Transaction{
		Message: ledger.Message{AccountKeys: accountKeys, OuterInstructions: []ledger.CompiledInstruction{instr}},
		Status:  &ledger.Status{},
	}
	_, err := PartitionTransaction(tx)
	assert.ErrorIs(t, err, ErrFailedTransientTokenAccountMatching)
}
