// Package assemble folds a partition's globally ordered instructions into
// a Bonbon: the aggregate record describing one NFT's mint, metadata,
// edition lifecycle, current owner, and metadata history.
package assemble

import "github.com/cielu/bonbon/ledger"

// EditionStatus is the edition lifecycle state machine of §3/§4.5.2. It
// starts at EditionNone and transitions only None -> Master or
// None -> Limited; it never moves once set (see
// TestUpdateMetadataCreateMasterEditionRequiresNoneStatus).
type EditionStatus int

const (
	EditionNone EditionStatus = iota
	EditionMaster
	EditionLimited
)

func (s EditionStatus) String() string {
	switch s {
	case EditionMaster:
		return "master"
	case EditionLimited:
		return "limited"
	default:
		return "none"
	}
}

// LimitedEdition records which master a Limited-status Bonbon was printed
// from, and its edition number when the minting instruction reports one.
type LimitedEdition struct {
	MasterKey  ledger.Key
	EditionNum *int64
}

// Creator is one entry of a Glazing's creator list.
type Creator struct {
	Address  ledger.Key
	Verified bool
	Share    int16
}

// Collection is the (optional) collection a Glazing claims membership in.
type Collection struct {
	Address  ledger.Key
	Verified bool
}

// Coordinates identifies the instruction that produced a Glazing snapshot,
// the same (slot, block_index, outer_index, inner_index) key §5 orders
// replay by. It lets a `latest` join find a mint's current Glazing without
// relying on append order surviving storage.
type Coordinates struct {
	Slot       uint64
	BlockIndex uint64
	OuterIndex int64
	InnerIndex *int64
}

// Glazing is one snapshot in a Bonbon's append-only metadata history.
type Glazing struct {
	Uri        []byte
	Creators   []Creator
	Collection *Collection
	At         Coordinates
}

// Bonbon is the per-partition-key aggregate produced by replay. MintKey and
// MetadataKey are the zero Key until populated by an InitializeMint or
// metadata-create instruction respectively; once MetadataKey is set it
// never changes.
type Bonbon struct {
	MintKey        ledger.Key
	MetadataKey    ledger.Key
	CurrentOwner   *ledger.Key
	CurrentAccount *ledger.Key
	EditionStatus  EditionStatus
	LimitedEdition *LimitedEdition
	Glazing        []Glazing
}

// New returns an empty Bonbon, created on demand for a partition key when
// its first partitioned instruction is replayed.
func New() *Bonbon {
	return &Bonbon{}
}

// OwnerLookup carries the owner key observed for a token account at a given
// account_index, derived by the caller from post-balance owner fields.
type OwnerLookup map[uint8]ledger.Key

// FindMetadataAccountFunc derives a mint's canonical metadata account. It
// is a deterministic program-derived-address computation outside this
// package's scope; callers supply it.
type FindMetadataAccountFunc func(mint ledger.Key) ledger.Key

func acctIndex(instr ledger.CompiledInstruction, i int) (uint8, error) {
	if i < 0 || i >= len(instr.Accounts) {
		return 0, ErrBadAccountKeyIndex
	}
	return uint8(instr.Accounts[i]), nil
}

func acctKey(accountKeys []ledger.Key, instr ledger.CompiledInstruction, i int) (ledger.Key, error) {
	idx, err := acctIndex(instr, i)
	if err != nil {
		return ledger.Key{}, err
	}
	if int(idx) >= len(accountKeys) {
		return ledger.Key{}, ErrBadAccountKeyIndex
	}
	return accountKeys[idx], nil
}
