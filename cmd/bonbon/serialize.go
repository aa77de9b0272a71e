package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cielu/bonbon/ledger"
)

// encodeTransaction serializes a transaction to the length-prefixed binary
// form §6 names for the transactions sink: a little-endian uint32 byte
// count followed by the encoded payload. The persisted record shapes are
// specified as format-agnostic, so JSON is the payload codec here.
func encodeTransaction(tx ledger.Transaction) ([]byte, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encodeTransaction: %w", err)
	}
	out := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(out, uint32(len(payload)))
	copy(out[4:], payload)
	return out, nil
}

// decodeTransaction reverses encodeTransaction.
func decodeTransaction(data []byte) (ledger.Transaction, error) {
	var tx ledger.Transaction
	if len(data) < 4 {
		return tx, fmt.Errorf("decodeTransaction: truncated length prefix")
	}
	n := binary.LittleEndian.Uint32(data)
	if int(n) > len(data)-4 {
		return tx, fmt.Errorf("decodeTransaction: truncated payload")
	}
	if err := json.Unmarshal(data[4:4+n], &tx); err != nil {
		return tx, fmt.Errorf("decodeTransaction: %w", err)
	}
	return tx, nil
}
