// Copyright 2024 The go-solana Authors
// This file is part of the go-solana library.

package solana

import (
	"bytes"
	"encoding/json"

	"github.com/mr-tron/base58"
)

// PublicKeyLength is the expected length of the PublicKey
const PublicKeyLength = 32

// ///// -------------------------------------------------///////
// ///// -------------------------------------------------///////
// ///// -------------------- PublicKey --------------------///////
// ///// -------------------- PublicKey --------------------///////
// ///// -------------------------------------------------///////
// ///// -------------------------------------------------///////

// PublicKey The PublicKey
type PublicKey [PublicKeyLength]byte

// BytesToPublicKey returns PublicKey with value b.
func BytesToPublicKey(b []byte) (a PublicKey) {
	a.SetBytes(b)
	return
}

// StrToPublicKey returns PublicKey with byte values of b.
// Notice: only base58 is supported; any other string yields the zero PublicKey
func StrToPublicKey(b string) PublicKey {
	// decode base58 str
	if d, err := base58.Decode(b); err == nil {
		return BytesToPublicKey(d)
	}
	// empty
	return PublicKey{}
}

// Base58ToPublicKey returns PublicKey with byte values of b.
func Base58ToPublicKey(b string) PublicKey {
	// decode base58
	d, _ := base58.Decode(b)
	// bytes to PublicKey
	return BytesToPublicKey(d)
}

// IsEmpty PublicKey is empty
func (p PublicKey) IsEmpty() bool {
	return p == PublicKey{}
}

// Equals compares PublicKey a eq b
func (p PublicKey) Equals(b PublicKey) bool {
	return p == b
}

// Cmp compares two PublicKeyes.
func (p PublicKey) Cmp(other PublicKey) int {
	return bytes.Compare(p[:], other[:])
}

// Bytes return PublicKey bytes
func (p PublicKey) Bytes() []byte { return p[:] }

// Base58 return base58 account
func (p PublicKey) Base58() string {
	return base58.Encode(p[:])
}

// String return base58 account
func (p PublicKey) String() string {
	return p.Base58()
}

// SetBytes sets the PublicKey to the value of b.
func (p *PublicKey) SetBytes(b []byte) {
	if len(b) > len(p) {
		b = b[len(b)-PublicKeyLength:]
	}
	copy(p[PublicKeyLength-len(b):], b)
}

// MarshalText returns base58 str account
func (p PublicKey) MarshalText() ([]byte, error) {
	input, err := json.Marshal(p.Base58())
	return input[1 : len(input)-1], err
}

// UnmarshalText parses an account in base58 syntax.
func (p *PublicKey) UnmarshalText(input []byte) error {
	val, err := base58.Decode(string(input))
	if err != nil {
		return err
	}
	p.SetBytes(val)
	return nil
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Base58())
}

// UnmarshalJSON parses an account in base58 syntax.
func (p *PublicKey) UnmarshalJSON(input []byte) error {
	// Unmarshal data to []byte
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return err
	}
	// Decode
	if val, err := base58.Decode(s); err != nil {
		return err
	} else {
		p.SetBytes(val)
	}
	return nil
}
