package replay

import "github.com/cielu/bonbon/ledger"

// TokenMeta is the per-transaction view of a token account's balance,
// merged from the pre- and post-balance arrays, keyed by its position in
// the transaction's account list.
type TokenMeta struct {
	AccountIndex uint8
	Mint         ledger.Key
	Decimals     uint8
	PreAmount    *string
	PostAmount   *string
}

// NFTShaped reports whether this balance could plausibly belong to an NFT:
// zero decimals, and each of pre/post is either absent or a single-digit
// "0"/"1" decimal string. This rejects ordinary fungible balances and
// semi-fungible tokens with supply > 1.
func (m TokenMeta) NFTShaped() bool {
	if m.Decimals != 0 {
		return false
	}
	return isZeroOrOneAmount(m.PreAmount) && isZeroOrOneAmount(m.PostAmount)
}

func isZeroOrOneAmount(amount *string) bool {
	if amount == nil {
		return true
	}
	return *amount == "0" || *amount == "1"
}

// BalanceIndex is the per-transaction token-balance side table of §4.2,
// plus the mutable transient overlay for accounts initialized and closed
// within the same transaction.
type BalanceIndex struct {
	base      map[uint8]*TokenMeta
	transient map[uint8]*TokenMeta
}

// NewBalanceIndex merges a transaction's pre- and post-token-balance arrays
// by account_index. Pre/post entries that disagree on mint or decimals for
// the same account_index keep the earlier (pre) values, matching the
// reference implementation's documented implementation-defined behavior.
func NewBalanceIndex(pre, post []ledger.TokenBalance) *BalanceIndex {
	idx := &BalanceIndex{
		base:      make(map[uint8]*TokenMeta, len(pre)+len(post)),
		transient: make(map[uint8]*TokenMeta),
	}
	for _, b := range pre {
		amount := b.Amount
		idx.base[b.AccountIndex] = &TokenMeta{
			AccountIndex: b.AccountIndex,
			Mint:         b.Mint,
			Decimals:     b.Decimals,
			PreAmount:    &amount,
		}
	}
	for _, b := range post {
		amount := b.Amount
		if existing, ok := idx.base[b.AccountIndex]; ok {
			existing.PostAmount = &amount
			continue
		}
		idx.base[b.AccountIndex] = &TokenMeta{
			AccountIndex: b.AccountIndex,
			Mint:         b.Mint,
			Decimals:     b.Decimals,
			PostAmount:   &amount,
		}
	}
	return idx
}

// Get looks up the balance meta for account_index, checking the base index
// before the transient overlay.
func (idx *BalanceIndex) Get(accountIndex uint8) (*TokenMeta, bool) {
	if m, ok := idx.base[accountIndex]; ok {
		return m, true
	}
	if m, ok := idx.transient[accountIndex]; ok {
		return m, true
	}
	return nil, false
}

// PushTransient records a token account observed via InitializeAccount that
// has no pre/post balance entry. Its decimals are set to the sentinel value
// 1, so it always fails the NFT-shape heuristic; CloseAccount removes it via
// RemoveTransient.
func (idx *BalanceIndex) PushTransient(accountIndex uint8, mint ledger.Key) {
	idx.transient[accountIndex] = &TokenMeta{
		AccountIndex: accountIndex,
		Mint:         mint,
		Decimals:     1,
	}
}

// RemoveTransient drops a transient entry on CloseAccount.
func (idx *BalanceIndex) RemoveTransient(accountIndex uint8) {
	delete(idx.transient, accountIndex)
}

// TransientEmpty reports whether the transient overlay has been fully
// drained. partition_transaction asserts this at the end of every
// successful run.
func (idx *BalanceIndex) TransientEmpty() bool {
	return len(idx.transient) == 0
}
