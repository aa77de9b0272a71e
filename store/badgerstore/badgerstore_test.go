package badgerstore

import (
	"testing"

	solana "github.com/cielu/bonbon"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testMint(b byte) ledger.Key {
	var k ledger.Key
	k[0] = b
	return k
}

func TestPutAndIterateTransactionsInOrder(t *testing.T) {
	s := openTestStore(t)
	sig1 := [64]byte{1}
	sig2 := [64]byte{2}
	require.NoError(t, s.PutTransaction(store.TransactionRecord{Slot: 2, BlockIndex: 0, Signature: sig2, Transaction: []byte("b")}))
	require.NoError(t, s.PutTransaction(store.TransactionRecord{Slot: 1, BlockIndex: 0, Signature: sig1, Transaction: []byte("a")}))

	var seen []int64
	err := s.TransactionsInOrder(func(rec store.TransactionRecord) error {
		seen = append(seen, rec.Slot)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestPutPartitionAndLookupByKey(t *testing.T) {
	s := openTestStore(t)
	mint := testMint(7)
	rec := store.PartitionRecord{
		PartitionKey: mint,
		ProgramKey:   solana.TokenProgramID,
		Slot:         1,
		OuterIndex:   0,
		Signature:    [64]byte{9},
	}
	require.NoError(t, s.PutPartition(rec))

	got, err := s.PartitionsByKey(mint)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mint, got[0].PartitionKey)

	mints, err := s.DistinctMintPartitionKeys()
	require.NoError(t, err)
	assert.Contains(t, mints, mint)
}

func TestAccountKeysRoundTrip(t *testing.T) {
	s := openTestStore(t)
	sig := [64]byte{3}
	keys := []ledger.Key{testMint(1), testMint(2)}
	require.NoError(t, s.PutAccountKeys(store.AccountKeysRecord{Signature: sig, Keys: keys}))

	got, err := s.AccountKeysFor(sig)
	require.NoError(t, err)
	assert.Equal(t, keys, got)
}

func TestPutBonbonAndGlazing(t *testing.T) {
	s := openTestStore(t)
	mint := testMint(4)
	require.NoError(t, s.PutBonbon(store.BonbonRecord{MintKey: mint}))
	require.NoError(t, s.PutGlazing(store.GlazingRecord{MintKey: mint}))
}

var _ store.Store = (*BadgerStore)(nil)
