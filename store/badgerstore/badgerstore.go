// Package badgerstore implements store.Store on an embedded BadgerDB
// instance, one key-prefixed table per §6 record shape.
package badgerstore

import (
	"encoding/json"
	"fmt"

	solana "github.com/cielu/bonbon"
	"github.com/cielu/bonbon/ledger"
	"github.com/cielu/bonbon/store"
	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is a store.Store backed by a single BadgerDB directory.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (creating if necessary) a BadgerDB instance at path.
func Open(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func txKey(slot, blockIndex int64, signature [64]byte) []byte {
	return []byte(fmt.Sprintf("tx:%016d:%016d:%x", slot, blockIndex, signature))
}

// PutTransaction implements store.Store.
func (s *BadgerStore) PutTransaction(rec store.TransactionRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("badgerstore: marshal transaction: %w", err)
		}
		return txn.Set(txKey(rec.Slot, rec.BlockIndex, rec.Signature), data)
	})
}

// TransactionsInOrder implements store.Store: badger iterates keys
// lexicographically, and the zero-padded (slot, block_index) prefix makes
// that order equal to (slot, block_index) ascending.
func (s *BadgerStore) TransactionsInOrder(visit func(store.TransactionRecord) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("tx:")
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			var rec store.TransactionRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("badgerstore: unmarshal transaction: %w", err)
			}
			if err := visit(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func partitionKey(partitionKey, signature string, outerIndex int64, innerIndex *int64) []byte {
	inner := "-"
	if innerIndex != nil {
		inner = fmt.Sprintf("%016d", *innerIndex)
	}
	return []byte(fmt.Sprintf("part:%s:%016d:%s:%s", partitionKey, outerIndex, inner, signature))
}

// PutPartition implements store.Store.
func (s *BadgerStore) PutPartition(rec store.PartitionRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("badgerstore: marshal partition: %w", err)
		}
		key := partitionKey(rec.PartitionKey.String(), fmt.Sprintf("%x", rec.Signature), rec.OuterIndex, rec.InnerIndex)
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if rec.ProgramKey != solana.TokenProgramID {
			return nil
		}
		return txn.Set(mintIndexKey(rec.PartitionKey.String()), []byte{1})
	})
}

func mintIndexKey(partitionKey string) []byte {
	return []byte(fmt.Sprintf("mintidx:%s", partitionKey))
}

// PartitionsByKey implements store.Store.
func (s *BadgerStore) PartitionsByKey(key ledger.Key) ([]store.PartitionRecord, error) {
	var out []store.PartitionRecord
	prefix := []byte(fmt.Sprintf("part:%s:", key.String()))
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec store.PartitionRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("badgerstore: unmarshal partition: %w", err)
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}

// DistinctMintPartitionKeys implements store.Store by scanning the
// mintidx: table, which PutPartition populates for token-program rows only.
func (s *BadgerStore) DistinctMintPartitionKeys() ([]ledger.Key, error) {
	var out []ledger.Key
	prefix := []byte("mintidx:")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw := string(it.Item().Key()[len(prefix):])
			out = append(out, solana.Base58ToPublicKey(raw))
		}
		return nil
	})
	return out, err
}

func accountKeysKey(signature [64]byte) []byte {
	return []byte(fmt.Sprintf("acctkeys:%x", signature))
}

// PutAccountKeys implements store.Store.
func (s *BadgerStore) PutAccountKeys(rec store.AccountKeysRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("badgerstore: marshal account keys: %w", err)
		}
		return txn.Set(accountKeysKey(rec.Signature), data)
	})
}

// AccountKeysFor implements store.Store.
func (s *BadgerStore) AccountKeysFor(signature [64]byte) ([]ledger.Key, error) {
	var rec store.AccountKeysRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(accountKeysKey(signature))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("badgerstore: account keys for %x: %w", signature, err)
	}
	return rec.Keys, nil
}

func bonbonKey(mint string) []byte {
	return []byte(fmt.Sprintf("bonbon:%s", mint))
}

// PutBonbon implements store.Store.
func (s *BadgerStore) PutBonbon(rec store.BonbonRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("badgerstore: marshal bonbon: %w", err)
		}
		return txn.Set(bonbonKey(rec.MintKey.String()), data)
	})
}

func glazingKey(mint string, slot, blockIndex, outerIndex int64, innerIndex *int64) []byte {
	inner := "-"
	if innerIndex != nil {
		inner = fmt.Sprintf("%016d", *innerIndex)
	}
	return []byte(fmt.Sprintf("glazing:%s:%016d:%016d:%016d:%s", mint, slot, blockIndex, outerIndex, inner))
}

// PutGlazing implements store.Store.
func (s *BadgerStore) PutGlazing(rec store.GlazingRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("badgerstore: marshal glazing: %w", err)
		}
		key := glazingKey(rec.MintKey.String(), rec.Slot, rec.BlockIndex, rec.OuterIndex, rec.InnerIndex)
		return txn.Set(key, data)
	})
}

var _ store.Store = (*BadgerStore)(nil)
